// SPDX-License-Identifier: MIT

package meshsubnet

import (
	"bytes"
	"strings"
)

// CompareSubnets is the total order over Subnets described in §4.5. It is
// what makes in-order traversal of a family yield longest-prefix-match
// candidates before shorter ones, and it is the comparator the ordered
// index (package subnettree) is keyed by.
//
// Order:
//  1. SubnetType ordinal; different types never compare equal.
//  2. Within a type: MAC compares the 6-byte address lexicographically.
//     IPv4/IPv6 compare by decreasing prefix length first (longer prefix
//     sorts first), then lexicographically by address.
//  3. Weight, ascending (lower weight sorts first, i.e. higher priority).
//  4. Owner name, lexicographically ascending — but only if both owners
//     are non-nil. If either is nil, step 3's result is returned even if
//     it was zero; this is what lets a partially-filled probe record
//     (used by lookup) compare against fully-owned entries.
func CompareSubnets(a, b *Subnet) int {
	if c := int(a.Type) - int(b.Type); c != 0 {
		return c
	}

	switch a.Type {
	case MACSubnet:
		if c := bytes.Compare(a.Mac[:], b.Mac[:]); c != 0 {
			return c
		}
	case IPv4Subnet:
		if c := b.V4Prefix - a.V4Prefix; c != 0 {
			return c
		}
		if c := bytes.Compare(a.V4[:], b.V4[:]); c != 0 {
			return c
		}
	case IPv6Subnet:
		if c := b.V6Prefix - a.V6Prefix; c != 0 {
			return c
		}
		if c := bytes.Compare(a.V6[:], b.V6[:]); c != 0 {
			return c
		}
	default:
		fatalInvariant("CompareSubnets", a.Type)
	}

	c := a.Weight - b.Weight
	if c != 0 || a.Owner == nil || b.Owner == nil {
		return c
	}

	return strings.Compare(a.Owner.Name, b.Owner.Name)
}
