// SPDX-License-Identifier: MIT

package meshsubnet

import (
	"github.com/meshvpn/subnettable/subnetcache"
	"github.com/meshvpn/subnettable/subnettree"
)

// Table is the process-wide subnet routing table: the global, non-owning
// index over every registered Subnet (spec §3, §4.4), fronted by the
// three-family lookup cache (§4.6). The zero Table is not usable; use
// NewTable.
//
// Table is built for the single-threaded event-loop model spec §5
// describes: all mutation and lookup is expected to happen on one thread,
// and no method here takes a lock. A host that mutates and looks up from
// more than one goroutine must supply its own mutual exclusion (§5, "If an
// implementer chooses a multi-threaded design").
type Table struct {
	global *subnettree.Tree[*Subnet]

	mac  subnetcache.Cache[MAC, *Subnet]
	ipv4 subnetcache.Cache[IPv4Addr, *Subnet]
	ipv6 subnetcache.Cache[IPv6Addr, *Subnet]

	log Logger
}

// TableOption configures a Table at construction time.
type TableOption func(*Table)

// WithLogger wires a Logger that receives diagnostics for mutation
// anomalies the table itself observes — an Add replacing an
// already-registered subnet, a Remove targeting a subnet that was not
// actually present — per spec §6's "Logger: single log(level, fmt, ...)
// sink". The default is a no-op.
func WithLogger(l Logger) TableOption {
	return func(t *Table) { t.log = l }
}

// NewTable creates an empty global index with an all-invalid cache (spec
// §5's initialization: "creates empty trees and all-invalid caches").
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		global: subnettree.New(func(a, b *Subnet) bool { return CompareSubnets(a, b) < 0 }, false),
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// flushCaches resets all three family caches. Apart from a Store
// overwriting the older of a cache's two slots, it is the only way the
// cache loses entries (spec §3 invariant 3, §4.7).
func (t *Table) flushCaches() {
	t.mac.Flush()
	t.ipv4.Flush()
	t.ipv6.Flush()
}

// Add registers subnet under node: it sets subnet.Owner, inserts into both
// the global index and node's own index, and flushes every cache (§4.7).
//
// If an equal-under-CompareSubnets Subnet is already registered, it is
// replaced in place rather than silently dropped — per spec §7, collision
// detection belongs at the parse/control-plane layer, not here; this
// method's only obligation on a collision is still flushing the cache,
// which it unconditionally does. The replacement is logged so a host that
// did not expect a collision has something to act on.
func (t *Table) Add(node *Node, subnet *Subnet) {
	subnet.Owner = node

	if _, replaced := node.Tree.Insert(subnet); replaced {
		t.log.Logf(LevelDebug, "subnet %s: replacing existing entry on node %s", FormatSubnet(subnet), node.Name)
	}
	t.global.Insert(subnet)

	t.flushCaches()
}

// Remove unregisters subnet from node. It deletes from node's own index
// first — the owning disposition, "triggering the destructor" in the C
// original's terms — and only then from the global, non-owning index,
// matching the order spec §4.7 mandates. Every cache is flushed
// afterwards.
//
// If subnet was not actually present in node's own index, the delete is a
// no-op there but a warning is logged: the caller's bookkeeping and the
// table have diverged.
func (t *Table) Remove(node *Node, subnet *Subnet) {
	if _, ok := node.Tree.Delete(subnet); !ok {
		t.log.Logf(LevelWarn, "subnet %s: not found on node %s's own index", FormatSubnet(subnet), node.Name)
	}
	t.global.Delete(subnet)

	t.flushCaches()
}

// RemoveNode tears down every Subnet node still owns: it walks node's own
// index and unlinks each entry from the global index, then flushes the
// cache. This is the node-teardown path spec §9 Design Notes describes
// ("destroy node -> destroy its subnet tree -> per-subnet destructor
// unlinks from the global tree"), supplemented here because spec.md names
// node/subnet lifecycle but leaves the teardown entry point implicit.
func (t *Table) RemoveNode(node *Node) {
	removed := 0

	node.Tree.Ascend(func(s *Subnet) bool {
		t.global.Delete(s)
		removed++
		return true
	})

	t.log.Logf(LevelDebug, "node %s: removed, unlinking %d subnet(s)", node.Name, removed)

	t.flushCaches()
}

// LookupExact searches node's own index for a Subnet comparing equal to
// probe (§4.6's lookup_exact), the operation the control plane uses to
// locate a previously announced subnet before issuing a removal.
func (t *Table) LookupExact(node *Node, probe *Subnet) *Subnet {
	found, ok := node.Tree.Find(probe)
	if !ok {
		return nil
	}
	return found
}

// LookupMAC answers "who owns this MAC address?" (§4.6's lookup_subnet_mac).
//
// If owner is non-nil, the search is scoped to that node's own index and
// the cache is likewise scoped to answers owned by it; otherwise both are
// global. Among all MAC subnets matching addr, the result prefers a
// reachable owner; absent one, the first match the in-order traversal
// encounters is kept (§4.6's reachability clarification).
func (t *Table) LookupMAC(owner *Node, addr MAC) *Subnet {
	accept := func(ans *Subnet) bool {
		return owner == nil || ans == nil || ans.Owner == owner
	}

	if cached, ok := t.mac.Lookup(addr, accept); ok {
		return cached
	}

	source := t.global
	if owner != nil {
		source = owner.Tree
	}

	result := scanFirstWithReachablePreference(source, func(s *Subnet) bool {
		return s.Type == MACSubnet && s.Mac == addr
	}, macRank)

	t.mac.Store(addr, result)
	return result
}

// macRank is scanFirstWithReachablePreference's specificity rank for MAC
// subnets: MAC keys have no prefix (§4.2), so every match is equally
// specific and reachability preference may range over all of them.
func macRank(*Subnet) int { return 0 }

// LookupIPv4 answers "which node's IPv4 prefix is the longest match for
// addr?" (§4.6's lookup_subnet_ipv4). The search is always global; there
// is no owner parameter.
//
// Because the global index orders IPv4 subnets by decreasing prefix length
// first, the first address match the in-order traversal encounters is
// already the longest-prefix match. A reachable-owner match at that SAME
// prefix length further down the traversal supersedes an earlier
// unreachable one and the scan stops there; reachability never upgrades
// the result to a shorter, less specific prefix (§4.6).
func (t *Table) LookupIPv4(addr IPv4Addr) *Subnet {
	if cached, ok := t.ipv4.Lookup(addr, nil); ok {
		return cached
	}

	result := scanFirstWithReachablePreference(t.global, func(s *Subnet) bool {
		return s.Type == IPv4Subnet && MaskCompare(addr[:], s.V4[:], s.V4Prefix) == 0
	}, func(s *Subnet) int { return s.V4Prefix })

	t.ipv4.Store(addr, result)
	return result
}

// LookupIPv6 is LookupIPv4 over 16-byte addresses and 0..128 prefixes
// (§4.6's lookup_subnet_ipv6).
func (t *Table) LookupIPv6(addr IPv6Addr) *Subnet {
	if cached, ok := t.ipv6.Lookup(addr, nil); ok {
		return cached
	}

	result := scanFirstWithReachablePreference(t.global, func(s *Subnet) bool {
		return s.Type == IPv6Subnet && MaskCompare(addr[:], s.V6[:], s.V6Prefix) == 0
	}, func(s *Subnet) int { return s.V6Prefix })

	t.ipv6.Store(addr, result)
	return result
}

// scanFirstWithReachablePreference walks tree in comparator order, keeping
// the first Subnet for which match returns true — the most specific match,
// since the tree orders a family's entries by decreasing specificity
// (§4.5). rank reports that specificity (prefix length for IPv4/IPv6,
// constant for MAC, which has none).
//
// If the kept match's owner is reachable, the scan stops there. Otherwise
// a later match still at the same rank supersedes it if that match's owner
// is reachable, and the scan stops there. Once the
// traversal reaches a strictly lower rank than the kept match without
// having found a reachable owner at the kept rank, the scan stops and
// returns the kept match unchanged — reachability preference never
// upgrades the result to a less specific match (§4.6).
func scanFirstWithReachablePreference(tree *subnettree.Tree[*Subnet], match func(*Subnet) bool, rank func(*Subnet) int) *Subnet {
	var result *Subnet
	var resultRank int

	tree.Ascend(func(s *Subnet) bool {
		if !match(s) {
			return true
		}

		if result == nil {
			result, resultRank = s, rank(s)
			return s.Owner == nil || !s.Owner.Reachable
		}

		if rank(s) < resultRank {
			return false
		}

		if s.Owner != nil && s.Owner.Reachable {
			result = s
			return false
		}

		return true
	})

	return result
}

// Dump returns the textual form of every subnet currently in the global
// index together with its owner's name, one entry per line, ordered as
// the comparator orders them. It is the Go counterpart of the C original's
// dump_subnets() debug listing (§4, "Supplemented features"); callers
// typically hand it to a Logger at LevelDebug rather than printing it
// directly.
func (t *Table) Dump() []string {
	lines := make([]string, 0, t.global.Len())

	t.global.Ascend(func(s *Subnet) bool {
		owner := "<no owner>"
		if s.Owner != nil {
			owner = s.Owner.Name
		}
		lines = append(lines, FormatSubnet(s)+" owner "+owner)
		return true
	})

	return lines
}

// Size returns the number of subnets currently registered globally.
func (t *Table) Size() int { return t.global.Len() }
