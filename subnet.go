// SPDX-License-Identifier: MIT

package meshsubnet

import "time"

// SubnetType discriminates the three address families a Subnet can carry.
// The ordinals fix the total order's first comparison key (§4.5): MAC
// sorts before IPv4, which sorts before IPv6.
type SubnetType int

const (
	MACSubnet SubnetType = iota
	IPv4Subnet
	IPv6Subnet
)

func (t SubnetType) String() string {
	switch t {
	case MACSubnet:
		return "mac"
	case IPv4Subnet:
		return "ipv4"
	case IPv6Subnet:
		return "ipv6"
	default:
		return "unknown"
	}
}

// Subnet is an ownership claim by a Node over a MAC address or an IPv4/IPv6
// prefix. It is a closed sum over the three address families (§9 Design
// Notes: "tagged variants... encode as a discriminated union"); only the
// fields matching Type are meaningful, mirroring the C original's union
// over net.mac / net.ipv4 / net.ipv6.
//
// Owner is set exclusively by the mutation API (Table.Add); ParseSubnet
// never touches it, so parsing stays pure and side-effect free (§4.2).
type Subnet struct {
	Type SubnetType

	Mac MAC

	V4       IPv4Addr
	V4Prefix int

	V6       IPv6Addr
	V6Prefix int

	Weight int
	Owner  *Node

	// Expires is opaque to this package; it is preserved unchanged across
	// Add/Remove/Update for the benefit of other subsystems (§3).
	Expires time.Time
}

// address returns the raw bytes significant for this Subnet's family,
// dispatching on Type the way the comparator and formatter do.
func (s *Subnet) address() []byte {
	switch s.Type {
	case MACSubnet:
		return s.Mac[:]
	case IPv4Subnet:
		return s.V4[:]
	case IPv6Subnet:
		return s.V6[:]
	default:
		fatalInvariant("Subnet.address", s.Type)
		return nil
	}
}

// prefixLen returns the significant prefix length for IPv4/IPv6 Subnets.
// Calling it on a MAC subnet is a programming error: MAC keys have no
// prefix, see §4.2.
func (s *Subnet) prefixLen() int {
	switch s.Type {
	case IPv4Subnet:
		return s.V4Prefix
	case IPv6Subnet:
		return s.V6Prefix
	default:
		fatalInvariant("Subnet.prefixLen", s.Type)
		return 0
	}
}
