// SPDX-License-Identifier: MIT

package meshsubnet

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// maxSubnetText bounds the textual form the way the C original's 64-byte
// stack buffer did (§4.3): longer input is truncated before parsing and
// will typically fail as a result. Go strings need no such buffer to avoid
// overflow, but the truncation itself is part of the wire-compatible
// behavior, so it is kept.
const maxSubnetText = 63

// ParseSubnet parses the wire/config textual form described in §4.3:
//
//	subnet ::= body ("/" prefix)? ("#" weight)?
//	body   ::= mac | ipv4 | ipv6
//
// Weight is parsed and stripped first, then prefix, then the remaining
// body is tried as a MAC, then an IPv4 address, then an IPv6 address. The
// returned Subnet never has Owner set; that is the mutation API's job.
func ParseSubnet(input string) (*Subnet, error) {
	text := input
	if len(text) > maxSubnetText {
		text = text[:maxSubnetText]
	}

	weight := 10

	if i := strings.IndexByte(text, '#'); i >= 0 {
		w, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return nil, parseErrorf(input, "bad weight: %v", err)
		}
		weight = w
		text = text[:i]
	}

	prefix := -1

	if i := strings.IndexByte(text, '/'); i >= 0 {
		p, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return nil, parseErrorf(input, "bad prefix length: %v", err)
		}
		if p < 0 {
			return nil, parseErrorf(input, "negative prefix length")
		}
		prefix = p
		text = text[:i]
	}

	if mac, ok := parseMAC(text); ok {
		if prefix >= 0 {
			return nil, parseErrorf(input, "a MAC address cannot carry a prefix length")
		}
		return &Subnet{Type: MACSubnet, Mac: mac, Weight: weight}, nil
	}

	if addr, err := netip.ParseAddr(text); err == nil && addr.Is4() {
		if prefix == -1 {
			prefix = 32
		}
		if prefix > 32 {
			return nil, parseErrorf(input, "IPv4 prefix length %d exceeds 32", prefix)
		}
		return &Subnet{Type: IPv4Subnet, V4: addr.As4(), V4Prefix: prefix, Weight: weight}, nil
	}

	if addr, err := netip.ParseAddr(text); err == nil && addr.Is6() {
		if prefix == -1 {
			prefix = 128
		}
		if prefix > 128 {
			return nil, parseErrorf(input, "IPv6 prefix length %d exceeds 128", prefix)
		}
		return &Subnet{Type: IPv6Subnet, V6: addr.As16(), V6Prefix: prefix, Weight: weight}, nil
	}

	return nil, parseErrorf(input, "not a MAC address, IPv4 address or IPv6 address")
}

// parseMAC accepts six colon-separated hex groups of one or two digits
// each, the legacy unpadded form tinc peers still emit (§4.3): a strict
// two-digit-per-group parser would reject ADD_SUBNET messages from old
// peers.
func parseMAC(s string) (MAC, bool) {
	var mac MAC

	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return mac, false
	}

	for i, part := range parts {
		if len(part) == 0 || len(part) > 2 {
			return mac, false
		}

		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return mac, false
		}

		mac[i] = byte(v)
	}

	return mac, true
}

// FormatSubnet renders a Subnet in the textual form §4.3 defines. The
// prefix suffix is emitted only when it differs from the family default
// (32 for IPv4, 128 for IPv6; MAC never carries one), and the weight
// suffix only when it differs from the default of 10 — so
// ParseSubnet(FormatSubnet(s)) reproduces s for every well-formed Subnet.
func FormatSubnet(s *Subnet) string {
	var b strings.Builder

	switch s.Type {
	case MACSubnet:
		fmt.Fprintf(&b, "%02x:%02x:%02x:%02x:%02x:%02x",
			s.Mac[0], s.Mac[1], s.Mac[2], s.Mac[3], s.Mac[4], s.Mac[5])
	case IPv4Subnet:
		b.WriteString(netip.AddrFrom4(s.V4).String())
		if s.V4Prefix != 32 {
			fmt.Fprintf(&b, "/%d", s.V4Prefix)
		}
	case IPv6Subnet:
		b.WriteString(netip.AddrFrom16(s.V6).String())
		if s.V6Prefix != 128 {
			fmt.Fprintf(&b, "/%d", s.V6Prefix)
		}
	default:
		fatalInvariant("FormatSubnet", s.Type)
	}

	if s.Weight != 10 {
		fmt.Fprintf(&b, "#%d", s.Weight)
	}

	return b.String()
}
