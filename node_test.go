// SPDX-License-Identifier: MIT

package treebuffer

import "testing"

func TestNewNodeIsDetachedAndActive(t *testing.T) {
	n := NewNode(42)
	if !n.Active() {
		t.Fatal("a fresh Node must be active")
	}
	if n.Data() != 42 {
		t.Fatalf("Data() = %d, want 42", n.Data())
	}
	if !n.detached() {
		t.Fatal("a fresh Node must be its own singleton list")
	}
	if n.owner != nil {
		t.Fatal("a fresh Node must be unowned")
	}
}

func TestFreeNodeClearsTreeLinks(t *testing.T) {
	root := NewNode(0)
	tr := Initialize(2, Naive, root)
	child := NewNode(1)
	tr.AddChild(root, child)
	tr.Deactivate(child)
	tr.Deactivate(root)

	// Naive never reclaims, so force a manual free to exercise the
	// bookkeeping freeNode clears.
	tr.freeNode(child)
	if child.owner != nil || child.parent != nil || child.representative != nil {
		t.Fatal("freeNode must clear owner, parent, and representative")
	}
}
