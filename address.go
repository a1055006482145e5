// SPDX-License-Identifier: MIT

package meshsubnet

import "bytes"

// MAC is a 6-byte hardware address, compared as an unsigned big-endian
// byte sequence.
type MAC [6]byte

// IPv4Addr is a 4-byte IPv4 address in network byte order.
type IPv4Addr [4]byte

// IPv6Addr is a 16-byte IPv6 address in network byte order.
type IPv6Addr [16]byte

// MaskCompare compares the top prefixBits bits of a and b, both of which
// must have the same length. It returns 0 iff those bits agree; otherwise
// it returns a nonzero value whose sign matches the first differing bit,
// exactly as bytes.Compare would over the masked prefix.
//
// prefixBits <= 0 always compares equal (the empty prefix matches
// everything). prefixBits at or beyond the width of a/b degenerates to a
// full equality check over every byte.
func MaskCompare(a, b []byte, prefixBits int) int {
	if prefixBits <= 0 {
		return 0
	}

	width := len(a) * 8
	if prefixBits > width {
		prefixBits = width
	}

	fullBytes := prefixBits / 8
	remBits := prefixBits % 8

	if c := bytes.Compare(a[:fullBytes], b[:fullBytes]); c != 0 {
		return c
	}

	if remBits == 0 {
		return 0
	}

	mask := byte(0xFF << (8 - remBits))
	av, bv := a[fullBytes]&mask, b[fullBytes]&mask

	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}
