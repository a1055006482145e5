// SPDX-License-Identifier: MIT

// Package hook implements the environment-building and dispatch half of
// spec §4.8: building the key-value environment an operator hook expects
// and invoking an external hook runner on subnet-up/subnet-down
// transitions. The runner itself — the external hook-execution subsystem
// spec §1 places out of scope — is modeled only as the Runner interface;
// OSRunner is this repository's concrete implementation, built on os/exec
// because no library in the retrieved pack wraps "run an external script
// with a given environment" any better than the standard library does
// (see SPEC_FULL.md §2).
package hook

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	meshsubnet "github.com/meshvpn/subnettable"
)

// Config carries the four configuration singletons spec §6 lists as
// consumed, not owned, by the core: NetName, Device, Iface and Myself.
// The core itself has no configuration surface (SPEC_FULL.md §1.3); Config
// exists only so BuildEnvironment has something to read them from.
type Config struct {
	NetName string
	Device  string
	Iface   string
	Myself  *meshsubnet.Node
}

// Environment is the tuple spec §4.8 specifies, one field per key.
type Environment struct {
	NetName       string
	Device        string
	Interface     string
	Node          string
	Name          string
	Subnet        string
	Weight        string
	RemoteAddress string
	RemotePort    string
}

// Envp renders Environment as KEY=VALUE pairs in the order spec §4.8's
// table lists them, ready to append to a subprocess's environment.
func (e Environment) Envp() []string {
	envp := []string{
		"NETNAME=" + e.NetName,
		"DEVICE=" + e.Device,
		"INTERFACE=" + e.Interface,
		"NODE=" + e.Node,
		"NAME=" + e.Name,
		"SUBNET=" + e.Subnet,
		"WEIGHT=" + e.Weight,
	}

	if e.RemoteAddress != "" || e.RemotePort != "" {
		envp = append(envp, "REMOTEADDRESS="+e.RemoteAddress, "REMOTEPORT="+e.RemotePort)
	}

	return envp
}

// BuildEnvironment assembles the Environment for owner's ownership of
// subnet, per spec §4.8: the textual form has its #weight suffix stripped
// into its own WEIGHT variable, and REMOTEADDRESS/REMOTEPORT are populated
// only when owner is not the local node (cfg.Myself).
func BuildEnvironment(cfg Config, owner *meshsubnet.Node, subnet *meshsubnet.Subnet) Environment {
	text := meshsubnet.FormatSubnet(subnet)

	netstr, weight := text, ""
	if i := strings.IndexByte(text, '#'); i >= 0 {
		netstr, weight = text[:i], text[i+1:]
	}

	env := Environment{
		NetName:   cfg.NetName,
		Device:    cfg.Device,
		Interface: cfg.Iface,
		Node:      owner.Name,
		Subnet:    netstr,
		Weight:    weight,
	}

	if cfg.Myself != nil {
		env.Name = cfg.Myself.Name
	}

	if owner != cfg.Myself {
		env.RemoteAddress = owner.Address.Addr().String()
		env.RemotePort = strconv.Itoa(int(owner.Address.Port()))
	}

	return env
}

// Runner executes a named hook with the given environment. It is the
// external hook-execution subsystem spec §1 places out of scope; this
// package only ever calls it, never implements the sandboxing/queuing
// policy around it.
type Runner interface {
	Execute(name string, envp []string) error
}

// Emit invokes runner for event name with env, unless runner is nil (a
// host that registered no hook runner simply gets no-op emission).
func Emit(name string, env Environment, runner Runner) error {
	if runner == nil {
		return nil
	}
	return runner.Execute(name, env.Envp())
}

// OSRunner runs hooks as OS subprocesses found in Dir, named exactly after
// the event (subnet-up, subnet-down). A missing hook script is not an
// error: hooks are optional, and tinc-style deployments routinely have
// none configured at all.
type OSRunner struct {
	Dir string
}

func (r OSRunner) Execute(name string, envp []string) error {
	path := filepath.Join(r.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	cmd := exec.Command(path)
	cmd.Env = append(os.Environ(), envp...)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hook: %s: %w", name, err)
	}
	return nil
}

// Update is the mutation API's update(owner, subnet?, up) entry point
// (spec §4.7): it fires a subnet-up or subnet-down event for subnet, or,
// if subnet is nil, one event per subnet currently in owner's own index.
// It lives in this package rather than on meshsubnet.Table because firing
// hooks needs no access to the global index or the lookup cache — only to
// owner's own tree, which owner already exposes.
//
// Update does not stop at the first failing hook; it runs every event and
// returns the combined errors so one broken hook script cannot mask
// failures in the others.
func Update(owner *meshsubnet.Node, subnet *meshsubnet.Subnet, up bool, cfg Config, runner Runner) error {
	name := "subnet-down"
	if up {
		name = "subnet-up"
	}

	emit := func(s *meshsubnet.Subnet) error {
		return Emit(name, BuildEnvironment(cfg, owner, s), runner)
	}

	if subnet != nil {
		return emit(subnet)
	}

	var errs []error
	owner.Tree.Ascend(func(s *meshsubnet.Subnet) bool {
		if err := emit(s); err != nil {
			errs = append(errs, err)
		}
		return true
	})

	return errors.Join(errs...)
}
