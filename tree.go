// SPDX-License-Identifier: MIT

package treebuffer

import (
	"io"

	"github.com/bits-and-blooms/bitset"
)

// Tree is one owning container for a rooted tree of Nodes. A Tree
// exclusively owns every Node reachable from it once Initialize or
// AddChild has adopted it; Nodes never move between Trees and a Tree is
// never mutated concurrently with itself.
type Tree struct {
	history   int
	algorithm Algorithm

	frontier      Node // sentinel head of the active-frontier list
	pendingDelete Node // sentinel head of the pending-delete list

	nodeCount       int // maintained only under Amortized
	lastGCNodeCount int // maintained only under Amortized

	nextID uint // monotonic allocation id, scoped to this Tree

	opMems    int
	statsSink io.Writer

	seen *bitset.BitSet // scratch mark-bit set, reused across sweeps by Mark/Amortized

	onFree func(*Node) // optional hook invoked exactly when a Node is freed; for tests
}

// History returns the Tree's fixed ancestor-retention bound.
func (t *Tree) History() int { return t.history }

// Algorithm returns the Tree's fixed reclamation discipline.
func (t *Tree) Algorithm() Algorithm { return t.algorithm }

// Initialize creates a Tree with the given history bound and reclamation
// algorithm, installing root as the sole member of its active frontier.
// root must be freshly constructed (by NewNode) and not already owned by
// any Tree.
func Initialize(history int, algo Algorithm, root *Node) *Tree {
	invariant(history > 0, "Initialize: history must be positive, got %d", history)
	invariant(root != nil, "Initialize: root must not be nil")
	invariant(root.owner == nil, "Initialize: root is already owned by a Tree")
	invariant(root.active, "Initialize: root must be active")

	t := &Tree{history: history, algorithm: algo}
	listInit(&t.frontier)
	listInit(&t.pendingDelete)

	t.adopt(root)
	listPushFront(&t.frontier, root)
	root.depth = 0
	root.representative = root
	root.activeCount = 1

	t.nodeCount = 1
	t.lastGCNodeCount = 1

	return t
}

// adopt transfers ownership of n to t and assigns it the next allocation
// id. n must be fresh and unowned.
func (t *Tree) adopt(n *Node) {
	invariant(n.owner == nil, "node is already owned by a Tree")
	n.owner = t
	n.id = t.nextID
	t.nextID++
}

// freeNode releases n back to the garbage collector. It clears the
// pointer fields an owning Tree held so a leaked reference elsewhere
// cannot keep n's subtree alive, and notifies the test hook, if any.
func (t *Tree) freeNode(n *Node) {
	n.owner = nil
	n.parent = nil
	n.representative = nil
	n.ll, n.rl = nil, nil
	if t.onFree != nil {
		t.onFree(n)
	}
}

// Dispose moves every frontier Node into the pending-delete list, then
// repeatedly reclaims one pending-delete Node — walking parents as
// needed — until every Node reachable from t has been freed. Terminates
// for any well-formed Tree, regardless of algorithm.
func (t *Tree) Dispose() {
	invariant(t.opMems == 0, "Dispose: called with pending mems")

	for !listEmpty(&t.frontier) {
		n := t.frontier.rl
		listDetach(n)
		listPushFront(&t.pendingDelete, n)
		t.touch(8)
	}

	for !listEmpty(&t.pendingDelete) {
		n := t.pendingDelete.rl
		listDetach(n)
		t.touch(4)

		p := n.parent
		n.parent = nil
		t.touch(2)
		t.freeNode(n)
		t.emitTag(tagFree)

		if p != nil {
			t.touch(1)
			p.children--
			t.touch(1)
			// An active p came off the frontier above, so it is already
			// queued (or freed); only internal nodes are queued here.
			if p.children == 0 && !p.active {
				listPushFront(&t.pendingDelete, p)
				t.touch(4)
			}
		}
	}

	t.emit(tagFinal, t.opMems)
	t.opMems = 0
}

// AddChild links child under parent and puts child on the active
// frontier. parent must be owned by t and active; child must be fresh,
// unowned, and active by construction.
func (t *Tree) AddChild(parent, child *Node) {
	invariant(t.opMems == 0, "AddChild: called with pending mems")
	invariant(parent != nil, "AddChild: parent must not be nil")
	invariant(child != nil, "AddChild: child must not be nil")
	invariant(parent.owner == t, "AddChild: parent is not owned by this tree")
	invariant(parent.active, "AddChild: parent must be active")
	invariant(child.owner == nil, "AddChild: child is already owned by a tree")
	invariant(child.active, "AddChild: child must be active")

	child.parent = parent
	t.touch(1)
	parent.children++
	t.touch(1)
	t.adopt(child)
	listPushFront(&t.frontier, child)
	t.touch(4)

	switch t.algorithm {
	case Amortized:
		t.nodeCount++
		t.touch(1)
		if t.nodeCount >= 2*t.lastGCNodeCount {
			t.touch(1)
			t.sweep()
			t.lastGCNodeCount = t.nodeCount
			t.touch(1)
		}
	case RealTime:
		t.deleteOne()
		child.depth = parent.depth + 1
		t.touch(2)
		if child.depth%t.history == 0 {
			child.representative = child
		} else {
			child.representative = parent.representative
			t.touch(1)
		}
		t.touch(1)
		child.representative.activeCount++
		t.touch(2)
	}

	t.emitTag(tagAlloc)
	t.emit(tagAddChild, t.opMems)
	t.opMems = 0
}

// Deactivate removes node from the active frontier. node must be owned
// by t and active. If node has no children it moves straight to the
// pending-delete list; otherwise it becomes an internal node, reachable
// only by following parent links from some active or pending-delete
// Node.
func (t *Tree) Deactivate(node *Node) {
	invariant(t.opMems == 0, "Deactivate: called with pending mems")
	invariant(node != nil, "Deactivate: node must not be nil")
	invariant(node.owner == t, "Deactivate: node is not owned by this tree")
	invariant(node.active, "Deactivate: node must be active")

	node.active = false
	t.touch(1)
	listDetach(node)
	t.touch(4)

	t.touch(1)
	if node.children == 0 {
		listPushFront(&t.pendingDelete, node)
		t.touch(4)
	}

	switch t.algorithm {
	case Mark:
		t.sweep()
	case RealTime:
		invariant(node.representative != nil, "Deactivate: real-time node missing a representative")
		node.representative.activeCount--
		t.touch(2)
		if node.representative.activeCount == 0 {
			t.touch(1)
			t.cutParent(node.representative)
		}
	}

	t.emit(tagDeactivate, t.opMems)
	t.opMems = 0
}

// Expand is equivalent to calling AddChild(tree, parent, c) for each c in
// children, in order, followed by Deactivate(tree, parent).
func (t *Tree) Expand(parent *Node, children []*Node) {
	for _, c := range children {
		t.AddChild(parent, c)
	}
	t.Deactivate(parent)
}

// History writes into out a sequence of at most t.History() Nodes
// starting with node and walking parent links, stopping at the root,
// at a reclaimed ancestor, or once t.History() Nodes have been written —
// whichever comes first — then a single nil terminator. node must be
// active. out must have capacity at least t.History()+1.
//
// It returns the number of Nodes written, node itself included (not
// counting the nil terminator).
func (t *Tree) History(node *Node, out []*Node) int {
	invariant(t.opMems == 0, "History: called with pending mems")
	invariant(node != nil, "History: node must not be nil")
	invariant(node.active, "History: node must be active")

	h := t.history
	t.touch(1)

	i := 0
	for n := node; n != nil && h > 0; {
		invariant(i < len(out), "History: out buffer too small, need capacity >= history+1")
		out[i] = n
		t.touch(1)
		i++
		h--
		n = n.parent
		t.touch(1)
	}
	if i < len(out) {
		out[i] = nil
	}

	t.emit(tagHistory, t.opMems)
	t.opMems = 0
	return i
}

// Active returns the first Node on the active frontier, or nil if the
// frontier is empty.
func (t *Tree) Active() *Node {
	if listEmpty(&t.frontier) {
		return nil
	}
	return t.frontier.rl
}

// NextActive returns the Node following n on the active frontier, or nil
// if n is the last. n must be active and currently owned by t.
func (t *Tree) NextActive(n *Node) *Node {
	invariant(n != nil, "NextActive: node must not be nil")
	invariant(n.active, "NextActive: node must be active")
	if n.rl == &t.frontier {
		return nil
	}
	return n.rl
}
