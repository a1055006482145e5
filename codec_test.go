// SPDX-License-Identifier: MIT

package meshsubnet

import "testing"

func TestParseSubnetExamples(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		format  string // expected FormatSubnet(parsed), if wantErr is false
	}{
		{input: "52:54:00:12:34:56", format: "52:54:00:12:34:56"},
		{input: "5:4:0:1:3:5", format: "05:04:00:01:03:05"},
		{input: "10.0.0.0/8", format: "10.0.0.0/8"},
		{input: "10.0.0.1", format: "10.0.0.1"},
		{input: "fe80::/10#5", format: "fe80::/10#5"},
		{input: "::/0#100", format: "::/0#100"},
		{input: "10.0.0.1/33", wantErr: true},
		{input: "52:54:00:12:34:56/48", wantErr: true},
		{input: "not-an-address", wantErr: true},
		{input: "10.0.0.1#", wantErr: true},
		{input: "10.0.0.1/-1", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseSubnet(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseSubnet(%q) = %+v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSubnet(%q) returned error: %v", tc.input, err)
			}
			if formatted := FormatSubnet(got); formatted != tc.format {
				t.Errorf("FormatSubnet(ParseSubnet(%q)) = %q, want %q", tc.input, formatted, tc.format)
			}
			if got.Owner != nil {
				t.Errorf("ParseSubnet(%q) set Owner, want nil (parsing must stay pure)", tc.input)
			}
		})
	}
}

// TestRoundTrip is the quantified invariant from spec §8:
// parse(format(s)) = s for every well-formed Subnet.
func TestRoundTrip(t *testing.T) {
	samples := []*Subnet{
		{Type: MACSubnet, Mac: MAC{0x52, 0x54, 0x00, 0x12, 0x34, 0x56}, Weight: 10},
		{Type: MACSubnet, Mac: MAC{5, 4, 0, 1, 3, 5}, Weight: 42},
		{Type: IPv4Subnet, V4: IPv4Addr{10, 1, 2, 0}, V4Prefix: 24, Weight: 5},
		{Type: IPv4Subnet, V4: IPv4Addr{10, 1, 2, 3}, V4Prefix: 32, Weight: 10},
		{Type: IPv6Subnet, V6: IPv6Addr{0xfe, 0x80}, V6Prefix: 10, Weight: 100},
		{Type: IPv6Subnet, V6: IPv6Addr{}, V6Prefix: 128, Weight: 10},
	}

	for _, s := range samples {
		text := FormatSubnet(s)
		got, err := ParseSubnet(text)
		if err != nil {
			t.Fatalf("ParseSubnet(FormatSubnet(%+v)) = %q: %v", s, text, err)
		}

		got.Owner = s.Owner // parsing never sets Owner; exclude it from the comparison
		if CompareSubnets(got, s) != 0 {
			t.Errorf("round trip mismatch for %+v: got %+v via %q", s, got, text)
		}
	}
}

func TestFormatSubnetDefaultsSuppressed(t *testing.T) {
	v4 := &Subnet{Type: IPv4Subnet, V4: IPv4Addr{10, 1, 2, 3}, V4Prefix: 32, Weight: 10}
	if got := FormatSubnet(v4); got != "10.1.2.3" {
		t.Errorf("FormatSubnet at default prefix/weight = %q, want no / or #", got)
	}

	v6 := &Subnet{Type: IPv6Subnet, V6: IPv6Addr{0x20, 0x01}, V6Prefix: 128, Weight: 10}
	if got := FormatSubnet(v6); got != "2001::" {
		t.Errorf("FormatSubnet at default prefix/weight = %q, want no / or #", got)
	}
}

func TestLongInputIsTruncatedNotOverrun(t *testing.T) {
	huge := "10.0.0.1" + string(make([]byte, 200))
	// Must not panic; truncation may or may not yield a parseable prefix,
	// but it must never read past maxSubnetText bytes.
	_, _ = ParseSubnet(huge)
}
