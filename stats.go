// SPDX-License-Identifier: MIT

package treebuffer

import (
	"fmt"
	"io"
)

// Statistic tags emitted to a Tree's stats sink. Stable and documented per
// spec: TA/TD/TH/TF report the mems counter for one public-entry call; S
// +1/-1 report node creation and reclamation, allowing post-hoc
// reconstruction of node-count over time.
const (
	tagAddChild   = "TA"
	tagDeactivate = "TD"
	tagHistory    = "TH"
	tagFinal      = "TF"
	tagAlloc      = "S +1"
	tagFree       = "S -1"
)

// touch counts n Node field accesses. Operations charge their Node field
// reads and writes through touch, directly or, for the list helpers, as
// a fixed cost at the call site. The count is not exhaustive: link reads
// while walking a list, the splices that move nodes onto the sweep's
// middle list, and the field clears in freeNode are not charged.
func (t *Tree) touch(n int) {
	t.opMems += n
}

// emit writes one line of the form "<tag> <n>\n" to the stats sink, if
// one is attached. Never counted against op_mems: statistics I/O is not
// itself tree work.
func (t *Tree) emit(tag string, n int) {
	if t.statsSink == nil {
		return
	}
	fmt.Fprintf(t.statsSink, "%s %d\n", tag, n)
}

// emitTag writes a bare tag line, used for the S +1 / S -1 node-count
// events which carry no count of their own.
func (t *Tree) emitTag(tag string) {
	if t.statsSink == nil {
		return
	}
	io.WriteString(t.statsSink, tag+"\n")
}

// StartStats attaches sink as the append-only destination for this
// Tree's statistics lines. At most one sink may be attached at a time;
// attaching a second without an intervening StopStats is a contract
// violation.
func (t *Tree) StartStats(sink io.Writer) {
	invariant(sink != nil, "StartStats: nil sink")
	invariant(t.statsSink == nil, "StartStats: a sink is already attached")
	t.statsSink = sink
}

// StopStats detaches the current stats sink, if any. The Tree never
// closes it; that remains the caller's responsibility.
func (t *Tree) StopStats() {
	t.statsSink = nil
}
