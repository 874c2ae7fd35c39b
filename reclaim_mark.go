// SPDX-License-Identifier: MIT

package treebuffer

import "github.com/bits-and-blooms/bitset"

// sweep is the mark-and-reclaim procedure shared by Mark and Amortized.
// It computes the set of Nodes within history-1 parent-edges above the
// frontier (for history 1, the frontier's parents are kept as well),
// cuts the links above that set, frees every Node whose last child link
// was cut, and then frees every Node that was already sitting on
// pending-delete when the sweep began.
//
// The "seen" mark bit spec.md describes as a per-Node field is kept here
// as one bit per Node in a tree-wide bitset.BitSet, indexed by each
// Node's monotonic allocation id, rather than as a Node field — see
// DESIGN.md for why.
func (t *Tree) sweep() {
	if t.seen == nil {
		t.seen = bitset.New(0)
	}

	for n := t.frontier.rl; n != &t.frontier; n = n.rl {
		t.markSeen(n)
	}

	now := &Node{}
	todo := &Node{}
	middle := &Node{}
	listInit(now)
	listInit(todo)
	listInit(middle)

	pushUnseenParent := func(n *Node, dst *Node) {
		p := n.parent
		t.touch(1)
		if p == nil {
			return
		}
		if t.isSeen(p) {
			return
		}
		t.markSeen(p)
		listPushFront(dst, p)
		t.touch(4)
	}

	for n := t.frontier.rl; n != &t.frontier; n = n.rl {
		pushUnseenParent(n, todo)
	}

	for layer := 2; layer < t.history && !listEmpty(todo); layer++ {
		now, todo = todo, now

		for n := now.rl; n != now; n = n.rl {
			pushUnseenParent(n, todo)
		}

		for !listEmpty(now) {
			n := listFront(now)
			listDetach(n)
			listPushFront(middle, n)
		}
	}

	for n := todo.rl; n != todo; {
		next := n.rl
		t.gcParent(n)
		n = next
	}

	for !listEmpty(&t.pendingDelete) {
		n := listFront(&t.pendingDelete)
		listDetach(n)
		t.gcNode(n)
	}

	for n := todo.rl; n != todo; n = n.rl {
		t.clearSeen(n)
	}
	for n := middle.rl; n != middle; n = n.rl {
		t.clearSeen(n)
	}
	for n := t.frontier.rl; n != &t.frontier; n = n.rl {
		t.clearSeen(n)
	}

	// Every surviving node still in todo or middle is an internal node
	// (category c): it must be linked into neither list once the scratch
	// lists go out of scope, so each reverts to a detached singleton.
	for n := todo.rl; n != todo; {
		next := n.rl
		n.ll, n.rl = n, n
		t.touch(2)
		n = next
	}
	for n := middle.rl; n != middle; {
		next := n.rl
		n.ll, n.rl = n, n
		t.touch(2)
		n = next
	}

	if t.algorithm == Amortized {
		t.lastGCNodeCount = t.nodeCount
		t.touch(1)
	}
}

// gcNode reclaims a Node already known unreachable: not seen, not
// active, with no remaining children.
func (t *Tree) gcNode(x *Node) {
	invariant(!t.seen.Test(x.id), "gcNode: node is still marked seen")
	invariant(!x.active, "gcNode: node is still active")
	invariant(x.children == 0, "gcNode: node still has children")

	t.gcParent(x)
	t.freeNode(x)
	if t.algorithm == Amortized {
		t.nodeCount--
		t.touch(1)
	}
	t.emitTag(tagFree)
}

// gcParent detaches y from its parent link, recursively reclaiming the
// parent if that was its last child and it isn't itself marked seen.
func (t *Tree) gcParent(y *Node) {
	x := y.parent
	t.touch(1)
	y.parent = nil
	t.touch(1)

	if x == nil {
		return
	}
	t.touch(1)
	x.children--
	t.touch(1)
	if x.children == 0 && !t.isSeen(x) {
		t.gcNode(x)
	}
}

func (t *Tree) markSeen(n *Node) {
	t.seen.Set(n.id)
	t.touch(1)
}

func (t *Tree) isSeen(n *Node) bool {
	t.touch(1)
	return t.seen.Test(n.id)
}

func (t *Tree) clearSeen(n *Node) {
	t.seen.Clear(n.id)
	t.touch(1)
}
