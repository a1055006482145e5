// SPDX-License-Identifier: MIT

package subnettree

import "testing"

func intLess(a, b int) bool { return a < b }

func TestTreeInsertFindDelete(t *testing.T) {
	tr := New(intLess, true)

	if _, ok := tr.Find(5); ok {
		t.Fatal("Find on empty tree returned ok")
	}

	tr.Insert(5)
	tr.Insert(3)
	tr.Insert(8)

	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}

	if got, ok := tr.Find(3); !ok || got != 3 {
		t.Fatalf("Find(3) = (%v, %v), want (3, true)", got, ok)
	}

	if removed, ok := tr.Delete(3); !ok || removed != 3 {
		t.Fatalf("Delete(3) = (%v, %v), want (3, true)", removed, ok)
	}
	if tr.Len() != 2 {
		t.Fatalf("Len() after delete = %d, want 2", tr.Len())
	}
	if _, ok := tr.Find(3); ok {
		t.Fatal("Find(3) after delete still found it")
	}
}

func TestTreeInsertReplacesOnCollision(t *testing.T) {
	tr := New(intLess, true)
	tr.Insert(5)

	replaced, had := tr.Insert(5)
	if !had || replaced != 5 {
		t.Fatalf("Insert collision = (%v, %v), want (5, true)", replaced, had)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after colliding insert", tr.Len())
	}
}

func TestTreeAscendOrderAndEarlyStop(t *testing.T) {
	tr := New(intLess, false)
	for _, v := range []int{5, 1, 9, 3, 7} {
		tr.Insert(v)
	}

	var visited []int
	tr.Ascend(func(v int) bool {
		visited = append(visited, v)
		return true
	})

	want := []int{1, 3, 5, 7, 9}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}

	var stopped []int
	tr.Ascend(func(v int) bool {
		stopped = append(stopped, v)
		return v != 3
	})
	if len(stopped) != 2 {
		t.Fatalf("Ascend did not stop early: visited %v", stopped)
	}
}

func TestTreeOwning(t *testing.T) {
	owning := New(intLess, true)
	nonOwning := New(intLess, false)

	if !owning.Owning() {
		t.Error("owning tree reports Owning() == false")
	}
	if nonOwning.Owning() {
		t.Error("non-owning tree reports Owning() == true")
	}
}
