// SPDX-License-Identifier: MIT

// Package subnetcache implements the per-family 2-slot lookup cache from
// spec §3/§4.6: a tiny memoization layer in front of the ordered index so
// that steady-state packet forwarding rarely has to walk a tree at all.
//
// Cache is generic over both the address key and the answer type so it
// carries no dependency on package meshsubnet, which embeds three
// instances of it (one per address family).
package subnetcache

// Cache holds two memoized key -> answer slots. The answer itself may be
// the zero value of V, meaning "no match" (spec §3: "answer: Subnet? (may
// be null meaning 'no match')") — a cached negative result is just as
// valid a cache hit as a positive one.
//
// The zero Cache is ready to use.
type Cache[K comparable, V any] struct {
	slots [2]slot[K, V]
	next  int
}

type slot[K comparable, V any] struct {
	valid  bool
	key    K
	answer V
}

// Lookup reports whether key is cached. accept, if non-nil, additionally
// filters candidate slots by their stored answer — this is how MAC lookup
// scopes cache hits to a particular owner (spec §4.6, §9 Open Questions:
// "lookup_mac additionally filters cache slots by owner, whereas
// lookup_ipv4/6 do not... preserved") while IPv4/IPv6 lookup, which has no
// owner parameter, simply passes a nil accept.
func (c *Cache[K, V]) Lookup(key K, accept func(V) bool) (V, bool) {
	for i := range c.slots {
		sl := &c.slots[i]
		if !sl.valid || sl.key != key {
			continue
		}
		if accept != nil && !accept(sl.answer) {
			continue
		}
		return sl.answer, true
	}

	var zero V
	return zero, false
}

// Store memoizes key -> answer in the next slot, toggling which of the two
// slots is "next" every time (spec §3's next_slot, round-robin over
// exactly 2 slots).
func (c *Cache[K, V]) Store(key K, answer V) {
	c.next = 1 - c.next
	c.slots[c.next] = slot[K, V]{valid: true, key: key, answer: answer}
}

// Flush invalidates both slots. Apart from a Store overwriting the older
// slot, it is the only way a Cache loses entries (spec §4.7): every mutation to either index must flush before any
// subsequent lookup is allowed to reuse a slot.
func (c *Cache[K, V]) Flush() {
	c.slots[0].valid = false
	c.slots[1].valid = false
}
