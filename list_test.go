// SPDX-License-Identifier: MIT

package treebuffer

import "testing"

func TestListEmptyAndPushFront(t *testing.T) {
	var sentinel Node
	listInit(&sentinel)
	if !listEmpty(&sentinel) {
		t.Fatal("freshly initialized list must be empty")
	}

	a := NewNode(1)
	b := NewNode(2)
	listPushFront(&sentinel, a)
	if listEmpty(&sentinel) {
		t.Fatal("list must be non-empty after a push")
	}
	if listFront(&sentinel) != a {
		t.Fatal("listFront must return the sole element")
	}

	listPushFront(&sentinel, b)
	if listFront(&sentinel) != b {
		t.Fatal("listPushFront must insert immediately after the sentinel")
	}
	if b.rl != a || a.ll != b {
		t.Fatal("b must precede a in list order")
	}
}

func TestListDetachLeavesSingleton(t *testing.T) {
	var sentinel Node
	listInit(&sentinel)
	a, b, c := NewNode(1), NewNode(2), NewNode(3)
	listPushFront(&sentinel, a)
	listPushFront(&sentinel, b)
	listPushFront(&sentinel, c)

	listDetach(b)
	if !b.detached() {
		t.Fatal("a detached node must be its own singleton list")
	}
	if c.rl != a || a.ll != c {
		t.Fatal("detaching the middle element must splice its neighbors together")
	}

	listDetach(a)
	listDetach(c)
	if !listEmpty(&sentinel) {
		t.Fatal("removing every element must leave the list empty")
	}
}

func TestListRoundTripPreservesAllElements(t *testing.T) {
	var sentinel Node
	listInit(&sentinel)
	nodes := make([]*Node, 5)
	for i := range nodes {
		nodes[i] = NewNode(i)
		listPushFront(&sentinel, nodes[i])
	}

	seen := map[*Node]bool{}
	for n := sentinel.rl; n != &sentinel; n = n.rl {
		seen[n] = true
	}
	for _, n := range nodes {
		if !seen[n] {
			t.Fatalf("node with data %d missing from list traversal", n.data)
		}
	}
	if len(seen) != len(nodes) {
		t.Fatalf("expected %d distinct nodes in the list, got %d", len(nodes), len(seen))
	}
}
