// SPDX-License-Identifier: MIT

// Package subnettree implements the ordered index described in spec §4.4:
// a balanced associative container keyed by a caller-supplied total order,
// supporting insert, delete, exact find and full in-order traversal.
//
// It is generic over the element type so it has no dependency on package
// meshsubnet (which embeds a *Tree in both its global table and its Node
// type) — grounded on github.com/google/btree's BTreeG[T], the ordered
// container the rest of the retrieved pack pulls in (it is an indirect
// dependency of Cray-HPE/cray-site-init's module graph).
package subnettree

import "github.com/google/btree"

// degree is the branching factor handed to btree.NewG. 32 is the value
// google/btree's own documentation and benchmarks use as a reasonable
// general-purpose default; this index is not hot enough (packet-rate
// lookups go through the cache first, see package subnetcache) to warrant
// tuning it further.
const degree = 32

// Tree is an ordered index over elements of type T, comparable via a Less
// function fixed at construction time (spec §4.5's comparator, for this
// module's use). The zero value is not usable; use New.
//
// A Tree constructed with owning=true is the per-node disposition from
// §4.4: deleting an element here is what actually discards it from the
// system (Table.Remove always deletes from the owner's Tree before the
// global one). A Tree constructed with owning=false is the global
// disposition: it only ever holds references that some owning Tree also
// holds.
type Tree[T any] struct {
	bt     *btree.BTreeG[T]
	owning bool
}

// New creates an empty Tree ordered by less.
func New[T any](less func(a, b T) bool, owning bool) *Tree[T] {
	return &Tree[T]{
		bt:     btree.NewG(degree, less),
		owning: owning,
	}
}

// Owning reports whether this Tree is responsible for the lifetime of its
// elements (the per-node disposition) rather than merely referencing
// elements another Tree owns (the global disposition).
func (t *Tree[T]) Owning() bool { return t.owning }

// Insert adds item, keyed by the Tree's comparator. If an element already
// compares equal to item, it is replaced and returned alongside true —
// spec §7 treats this as "insertion collision, not an error": mutation
// operations never fail, and it is the caller's job (Table.Add) to decide
// whether a replacement here is expected.
func (t *Tree[T]) Insert(item T) (replaced T, hadCollision bool) {
	return t.bt.ReplaceOrInsert(item)
}

// Delete removes the element comparing equal to item, if any.
func (t *Tree[T]) Delete(item T) (removed T, ok bool) {
	return t.bt.Delete(item)
}

// Find returns the element comparing equal to probe, if any. probe need
// not be a fully-populated element — §4.5's comparator explicitly supports
// partially-filled probe records (nil owner) for this purpose.
func (t *Tree[T]) Find(probe T) (T, bool) {
	return t.bt.Get(probe)
}

// Ascend visits every element in ascending comparator order exactly once,
// stopping early if fn returns false. For a family whose comparator sorts
// by decreasing prefix length first, this is what makes the first match a
// traversal encounters the longest-prefix match (spec §4.5, §4.6).
func (t *Tree[T]) Ascend(fn func(item T) bool) {
	t.bt.Ascend(func(item T) bool { return fn(item) })
}

// Len returns the number of elements currently indexed.
func (t *Tree[T]) Len() int { return t.bt.Len() }
