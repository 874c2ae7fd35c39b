// SPDX-License-Identifier: MIT

package treebuffer

// Node is one vertex of a tree. A Node is created detached and unowned by
// NewNode; it becomes owned by exactly one Tree the moment it is passed to
// that Tree's Initialize or AddChild, and is never transferred or copied
// by value afterwards — all mutation happens through Tree methods holding
// a *Node.
type Node struct {
	parent   *Node
	children int // count of x such that x.parent == this
	active   bool

	ll, rl *Node // intrusive circular doubly-linked list cell; ll==rl==self when detached

	data int

	id    uint // allocation id assigned on adoption by a Tree; indexes the mark bitset
	owner *Tree // the Tree that owns this node, nil until adopted; used only for precondition checks

	// Real-time bookkeeping. Zero and unused under Naive/Mark/Amortized.
	depth          int
	representative *Node
	activeCount    int
}

// NewNode allocates a fresh, unowned, active Node carrying data. The
// client may discard a never-consumed Node without leaking anything; once
// passed to (*Tree).Initialize or (*Tree).AddChild it belongs to that Tree
// and the client must not touch it directly again.
func NewNode(data int) *Node {
	n := &Node{active: true, data: data}
	n.ll, n.rl = n, n
	return n
}

// Data returns the opaque payload carried by n.
func (n *Node) Data() int { return n.data }

// Active reports whether n is currently on some Tree's active frontier.
func (n *Node) Active() bool { return n.active }

func (n *Node) detached() bool {
	return n.ll == n && n.rl == n
}
