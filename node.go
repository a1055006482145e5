// SPDX-License-Identifier: MIT

package meshsubnet

import (
	"net/netip"

	"github.com/meshvpn/subnettable/subnettree"
)

// Node is the minimal stand-in for the node registry spec §1 places out of
// scope ("the node registry (each subnet references a node by opaque
// handle)"). It carries only the fields this package actually reads:
// identity, reachability, its owned per-node index, and the transport
// endpoint the hook emitter reports for remote nodes (spec §3, §4.8).
type Node struct {
	// Name must be non-empty and unique across the process (spec §3).
	Name string

	// Reachable mirrors the external node registry's status.reachable.
	Reachable bool

	// Tree is this node's owned per-node index (spec §4.4): deleting a
	// Subnet here is what actually discards it from the system.
	Tree *subnettree.Tree[*Subnet]

	// Address is the node's last-known transport endpoint, used only to
	// populate REMOTEADDRESS/REMOTEPORT when this Node is not the local
	// node (spec §4.8).
	Address netip.AddrPort
}

// NewNode creates a Node with an empty, owning per-node subnet index.
func NewNode(name string) *Node {
	return &Node{
		Name: name,
		Tree: subnettree.New(func(a, b *Subnet) bool { return CompareSubnets(a, b) < 0 }, true),
	}
}
