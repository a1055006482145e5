// SPDX-License-Identifier: MIT

package meshsubnet

import "testing"

func TestMaskCompare(t *testing.T) {
	// Last byte: a = 0b01100000 (0x60), b = 0b01110000 (0x70). They agree on
	// the top three bits (011) and diverge at bit 4.
	a := []byte{10, 1, 2, 0x60}
	b := []byte{10, 1, 2, 0x70}

	tests := []struct {
		name string
		bits int
		want int
	}{
		{"zero prefix always matches", 0, 0},
		{"negative prefix always matches", -5, 0},
		{"byte-aligned prefix matches", 24, 0},
		{"sub-byte prefix within agreeing bits", 27, 0},
		{"sub-byte prefix crossing the diverging bit", 28, -1},
		{"full width is exact equality and differs", 32, -1},
		{"beyond width degenerates to full equality", 64, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MaskCompare(a, b, tc.bits)
			if sign(got) != sign(tc.want) {
				t.Errorf("MaskCompare(%v, %v, %d) = %d, want sign %d", a, b, tc.bits, got, tc.want)
			}
		})
	}
}

func TestMaskCompareSelf(t *testing.T) {
	a := []byte{192, 168, 1, 1}
	for bits := -1; bits <= 40; bits++ {
		if got := MaskCompare(a, a, bits); got != 0 {
			t.Fatalf("MaskCompare(a, a, %d) = %d, want 0", bits, got)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
