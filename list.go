// SPDX-License-Identifier: MIT

package treebuffer

// Every list used by this package is circular, doubly linked, and has a
// dedicated sentinel head (itself a *Node, never linked into any other
// list). A detached Node has ll == rl == itself. Splicing is a fixed
// small number of field writes; the list carries no separate count.
//
// The same Node migrates between the frontier, the pending-delete list,
// and the mark phase's scratch lists over its lifetime; an intrusive list
// with sentinels gives uniform O(1) head-insert, O(1) removal, and a
// trivial emptiness test, at the cost of every Node paying for two unused
// pointers while it is not list-resident anywhere (which never happens —
// a detached Node is a singleton list of one).

// listInit turns s into the sentinel of an empty list.
func listInit(s *Node) {
	s.ll, s.rl = s, s
}

// listEmpty reports whether the list headed by sentinel s holds no nodes.
func listEmpty(s *Node) bool {
	return s.rl == s
}

// listDetach splices n out of whatever list it is currently in, leaving it
// a singleton. n must not be a sentinel.
func listDetach(n *Node) {
	n.ll.rl = n.rl
	n.rl.ll = n.ll
	n.ll, n.rl = n, n
}

// listPushFront splices detached singleton n in immediately after
// sentinel s.
func listPushFront(s, n *Node) {
	n.ll = s
	n.rl = s.rl
	n.ll.rl = n
	n.rl.ll = n
}

// listFront returns the node adjacent to sentinel s, or nil if s heads an
// empty list.
func listFront(s *Node) *Node {
	if listEmpty(s) {
		return nil
	}
	return s.rl
}
