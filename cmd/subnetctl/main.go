// SPDX-License-Identifier: MIT

// Command subnetctl is a demonstration CLI over the meshsubnet routing
// table: it loads a small YAML topology (nodes and the subnets each one
// advertises), builds a Table from it, and lets an operator run the same
// lookups the tunnel forwarder would at packet rate.
//
// Flag/config wiring follows Cray-HPE/cray-site-init's pkg/cli pattern:
// cobra for the command tree, viper bound to both flags and a config file
// for everything else.
package main

import (
	"fmt"
	"net/netip"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	meshsubnet "github.com/meshvpn/subnettable"
	"github.com/meshvpn/subnettable/hook"
	"github.com/meshvpn/subnettable/meshlog"
)

type nodeConfig struct {
	Name      string   `mapstructure:"name"`
	Reachable bool     `mapstructure:"reachable"`
	Address   string   `mapstructure:"address"`
	Subnets   []string `mapstructure:"subnets"`
}

type topologyConfig struct {
	NetName string       `mapstructure:"netname"`
	Device  string       `mapstructure:"device"`
	Iface   string       `mapstructure:"iface"`
	Myself  string       `mapstructure:"myself"`
	HookDir string       `mapstructure:"hookdir"`
	Nodes   []nodeConfig `mapstructure:"nodes"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "subnetctl",
		Short: "Inspect a meshsubnet routing table built from a topology file",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "topology YAML file")
	v.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	root.AddCommand(newDumpCmd(v), newLookupCmd(v))

	return root
}

func loadTopology(v *viper.Viper) (*topologyConfig, error) {
	path := v.GetString("config")
	if path == "" {
		return nil, fmt.Errorf("subnetctl: --config is required")
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("subnetctl: reading %s: %w", path, err)
	}

	var cfg topologyConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("subnetctl: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// buildTable constructs a Table and node registry from cfg, logging (but
// not failing on) any subnet text that fails to parse — mirroring how the
// real daemon treats a malformed ADD_SUBNET message (spec §7: ParseError
// is surfaced to the caller, which logs and moves on).
func buildTable(cfg *topologyConfig, log meshsubnet.Logger) (*meshsubnet.Table, map[string]*meshsubnet.Node, *meshsubnet.Node) {
	table := meshsubnet.NewTable(meshsubnet.WithLogger(log))
	nodes := make(map[string]*meshsubnet.Node, len(cfg.Nodes))

	for _, nc := range cfg.Nodes {
		n := meshsubnet.NewNode(nc.Name)
		n.Reachable = nc.Reachable
		if nc.Address != "" {
			if addr, err := netip.ParseAddrPort(nc.Address); err == nil {
				n.Address = addr
			} else {
				log.Logf(meshsubnet.LevelWarn, "node %s: bad address %q: %v", nc.Name, nc.Address, err)
			}
		}
		nodes[nc.Name] = n
	}

	var myself *meshsubnet.Node
	if cfg.Myself != "" {
		myself = nodes[cfg.Myself]
	}

	runner := hook.Runner(nil)
	if cfg.HookDir != "" {
		runner = hook.OSRunner{Dir: cfg.HookDir}
	}

	hookCfg := hook.Config{NetName: cfg.NetName, Device: cfg.Device, Iface: cfg.Iface, Myself: myself}

	for _, nc := range cfg.Nodes {
		n := nodes[nc.Name]
		for _, text := range nc.Subnets {
			subnet, err := meshsubnet.ParseSubnet(text)
			if err != nil {
				log.Logf(meshsubnet.LevelWarn, "node %s: %v", nc.Name, err)
				continue
			}

			table.Add(n, subnet)

			if err := hook.Update(n, subnet, true, hookCfg, runner); err != nil {
				log.Logf(meshsubnet.LevelError, "node %s: subnet-up hook: %v", nc.Name, err)
			}
		}
	}

	return table, nodes, myself
}

func newLogger() meshsubnet.Logger {
	l, err := meshlog.New()
	if err != nil {
		return meshlog.Nop{}
	}
	return l
}

func newDumpCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every subnet in the global index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadTopology(v)
			if err != nil {
				return err
			}

			table, _, _ := buildTable(cfg, newLogger())
			for _, line := range table.Dump() {
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newLookupCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup {mac|ipv4|ipv6} ADDRESS",
		Short: "Look up the owner of an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadTopology(v)
			if err != nil {
				return err
			}

			table, _, _ := buildTable(cfg, newLogger())

			family, addrText := args[0], args[1]

			result, err := lookup(table, family, addrText)
			if err != nil {
				return err
			}

			if result == nil {
				fmt.Println("no match")
				return nil
			}

			fmt.Printf("%s owner %s\n", meshsubnet.FormatSubnet(result), result.Owner.Name)
			return nil
		},
	}

	return cmd
}

func lookup(table *meshsubnet.Table, family, addrText string) (*meshsubnet.Subnet, error) {
	switch family {
	case "mac":
		subnet, err := meshsubnet.ParseSubnet(addrText)
		if err != nil || subnet.Type != meshsubnet.MACSubnet {
			return nil, fmt.Errorf("subnetctl: %q is not a MAC address", addrText)
		}
		return table.LookupMAC(nil, subnet.Mac), nil

	case "ipv4":
		addr, err := netip.ParseAddr(addrText)
		if err != nil || !addr.Is4() {
			return nil, fmt.Errorf("subnetctl: %q is not an IPv4 address", addrText)
		}
		return table.LookupIPv4(addr.As4()), nil

	case "ipv6":
		addr, err := netip.ParseAddr(addrText)
		if err != nil || !addr.Is6() {
			return nil, fmt.Errorf("subnetctl: %q is not an IPv6 address", addrText)
		}
		return table.LookupIPv6(addr.As16()), nil

	default:
		return nil, fmt.Errorf("subnetctl: unknown family %q, want mac, ipv4 or ipv6", family)
	}
}
