// SPDX-License-Identifier: MIT

package subnetcache

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type answer struct {
	Owner  string
	Weight int
}

func TestCacheStoreAndLookup(t *testing.T) {
	var c Cache[string, int]

	if _, ok := c.Lookup("a", nil); ok {
		t.Fatal("Lookup on empty cache returned ok")
	}

	c.Store("a", 1)
	if got, ok := c.Lookup("a", nil); !ok || got != 1 {
		t.Fatalf("Lookup(a) = (%v, %v), want (1, true)", got, ok)
	}
}

func TestCacheNegativeResultIsAHit(t *testing.T) {
	var c Cache[string, *int]

	c.Store("a", nil)
	got, ok := c.Lookup("a", nil)
	if !ok {
		t.Fatal("Lookup(a) reported miss for a stored nil answer")
	}
	if got != nil {
		t.Fatalf("Lookup(a) = %v, want nil", got)
	}
}

func TestCacheTwoSlotRoundRobinEvictsOldest(t *testing.T) {
	var c Cache[string, int]

	c.Store("a", 1)
	c.Store("b", 2)
	c.Store("c", 3) // evicts "a", the slot written two Stores ago

	if _, ok := c.Lookup("a", nil); ok {
		t.Error("Lookup(a) still hit after a third Store evicted its slot")
	}
	if got, ok := c.Lookup("b", nil); !ok || got != 2 {
		t.Errorf("Lookup(b) = (%v, %v), want (2, true)", got, ok)
	}
	if got, ok := c.Lookup("c", nil); !ok || got != 3 {
		t.Errorf("Lookup(c) = (%v, %v), want (3, true)", got, ok)
	}
}

func TestCacheAcceptFilter(t *testing.T) {
	var c Cache[string, int]
	c.Store("a", 42)

	if _, ok := c.Lookup("a", func(v int) bool { return v == 99 }); ok {
		t.Error("Lookup with a rejecting accept still reported a hit")
	}
	if got, ok := c.Lookup("a", func(v int) bool { return v == 42 }); !ok || got != 42 {
		t.Errorf("Lookup with an accepting accept = (%v, %v), want (42, true)", got, ok)
	}
}

func TestCacheStoresStructAnswersByValue(t *testing.T) {
	var c Cache[string, answer]

	want := answer{Owner: "n1", Weight: 5}
	c.Store("10.1.2.5", want)

	got, ok := c.Lookup("10.1.2.5", nil)
	if !ok {
		t.Fatal("Lookup reported a miss for a just-stored key")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cached answer differs from what was stored (-want +got):\n%s", diff)
	}
}

func TestCacheFlush(t *testing.T) {
	var c Cache[string, int]
	c.Store("a", 1)
	c.Store("b", 2)

	c.Flush()

	if _, ok := c.Lookup("a", nil); ok {
		t.Error("Lookup(a) hit after Flush")
	}
	if _, ok := c.Lookup("b", nil); ok {
		t.Error("Lookup(b) hit after Flush")
	}
}
