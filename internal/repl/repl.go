// SPDX-License-Identifier: MIT

package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgrig/treebuffer"
)

// REPL interprets the command language spec.md §6 specifies against a
// single core treebuffer.Tree, owning the identifier table the core
// engine never sees. Contract violations inside the core are fatal
// panics (spec §7); everything reachable from this package validates
// its own input first and reports W:/E: diagnostics instead, exactly
// the split spec.md draws between "core" and "REPL" error handling.
type REPL struct {
	tree *treebuffer.Tree
	ids  *idTable

	out  io.Writer // "H: ..." and help output
	diag io.Writer // W:/E: diagnostics

	statsPath string         // empty if no statistics file was requested
	stats     io.WriteCloser // nil until `initialize` first runs
}

// New builds a REPL that writes command output to out and diagnostics to
// diag. statsPath, if non-empty, is opened once, when `initialize` first
// runs, and is attached as the core Tree's stats sink every time
// `initialize` runs — mirroring
// main.c attaching its single process-lifetime statistics_file to each
// freshly constructed Tree.
func New(out, diag io.Writer, statsPath string) *REPL {
	return &REPL{ids: newIDTable(), out: out, diag: diag, statsPath: statsPath}
}

// Close releases the statistics file, if one was opened. The caller
// must call this once processing is finished, matching main.c's final
// fflush/fclose on statistics_file.
func (r *REPL) Close() error {
	if r.stats != nil {
		return r.stats.Close()
	}
	return nil
}

func (r *REPL) warnf(format string, args ...any) {
	fmt.Fprintf(r.diag, "W: "+format+"\n", args...)
}

// Run processes lines from src until EOF, dispatching each to the
// matching command handler. It returns src.Err() verbatim once EOF is
// reached — non-nil only when the line buffer overflowed.
func (r *REPL) Run(src LineSource) error {
	for {
		line, ok := src.ReadLine()
		if !ok {
			return src.Err()
		}
		r.dispatch(line)
	}
}

func (r *REPL) dispatch(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	fields := strings.Fields(line)
	cmd, rest := fields[0], fields[1:]

	idx, err := matchCommand(cmd)
	if err != nil {
		r.warnf("%s", err)
		return
	}
	switch idx {
	case cmdInitialize:
		r.doInitialize(rest)
	case cmdAddChild:
		r.doAddChild(rest)
	case cmdDeactivate:
		r.doDeactivate(rest)
	case cmdExpand:
		r.doExpand(rest)
	case cmdHistory:
		r.doHistory(rest)
	case cmdHelp:
		r.doHelp()
	}
}

// reset discards the current tree (if any) and the identifier table,
// as `initialize` does before installing a fresh root. Matches main.c's
// reset(): delete(tree); memset(active, 0, ...).
func (r *REPL) reset() {
	if r.tree != nil {
		r.tree.StopStats()
		r.tree.Dispose()
	}
	r.ids.reset()
	r.tree = nil
}

func (r *REPL) doInitialize(args []string) {
	if len(args) < 3 {
		r.warnf("initialize needs HISTORY ALGORITHM ROOT_ID[:ROOT_DATA]")
		return
	}
	history, err := strconv.Atoi(args[0])
	if err != nil {
		r.warnf("cannot parse history %q. Ignoring", args[0])
		return
	}
	if history <= 0 {
		r.warnf("history must be positive, got %d. Ignoring", history)
		return
	}

	algo, err := treebuffer.ParseAlgorithm(args[1])
	if err != nil {
		r.warnf("%s", err)
		return
	}

	rootID, rootData, err := parseNode(args[2])
	if err != nil {
		r.warnf("cannot parse root id: %s", err)
		return
	}
	if !r.ids.inRange(rootID) {
		r.warnf("node id outside [0, %d)", maxNodeID)
		return
	}

	r.reset()

	root := treebuffer.NewNode(rootData)
	r.ids.put(rootID, root)

	r.tree = treebuffer.Initialize(history, algo, root)
	if r.statsPath != "" {
		if r.stats == nil {
			f, err := openStatsFile(r.statsPath)
			if err != nil {
				r.warnf("cannot open statistics file %s: %s", r.statsPath, err)
			} else {
				r.stats = f
			}
		}
		if r.stats != nil {
			r.tree.StartStats(r.stats)
		}
	}
}

func (r *REPL) doAddChild(args []string) {
	if r.tree == nil {
		r.warnf("no tree initialized")
		return
	}
	if len(args) < 2 {
		r.warnf("add_child needs PARENT_ID NEW_ID[:NEW_DATA]")
		return
	}
	parentID, err := strconv.Atoi(args[0])
	if err != nil {
		r.warnf("can't parse parent id, in add_child. Ignoring %s", args[0])
		return
	}
	childID, childData, err := parseNode(args[1])
	if err != nil {
		r.warnf("can't parse child, in add_child: %s", err)
		return
	}

	parent, parentOK := r.lookupOld(parentID)
	childOK := r.checkNew(childID)
	if !parentOK {
		r.warnf("invalid parent node id")
	}
	if !childOK {
		r.warnf("invalid child node")
	}
	if !parentOK || !childOK {
		return
	}

	child := treebuffer.NewNode(childData)
	r.ids.put(childID, child)
	r.tree.AddChild(parent, child)
}

func (r *REPL) doDeactivate(args []string) {
	if r.tree == nil {
		r.warnf("no tree initialized")
		return
	}
	if len(args) < 1 {
		r.warnf("can't parse node id, in deactivate")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		r.warnf("can't parse node id, in deactivate. Ignoring %s", args[0])
		return
	}
	node, ok := r.lookupOld(id)
	if !ok {
		r.warnf("invalid node id")
		return
	}
	r.tree.Deactivate(node)
	r.ids.remove(id)
}

// doExpand implements the rollback SPEC_FULL.md documents: every
// REPL-allocated child registered before the batch is found bad is
// unregistered (and, since it was never consumed by AddChild, simply
// dropped for the Go garbage collector); the parent's identifier-table
// entry is left untouched because it is only removed on success, exactly
// as main.c's do_expand never clears active[parent_id] on a failed batch.
func (r *REPL) doExpand(args []string) {
	if r.tree == nil {
		r.warnf("no tree initialized")
		return
	}
	if len(args) < 1 {
		r.warnf("cannot parse parent id to expand")
		return
	}
	parentID, err := strconv.Atoi(args[0])
	if err != nil {
		r.warnf("cannot parse parent id to expand. Ignoring %s", args[0])
		return
	}

	childIDs := make([]int, 0, len(args)-1)
	children := make([]*treebuffer.Node, 0, len(args)-1)
	bad := false

	for i, tok := range args[1:] {
		id, data, err := parseNode(tok)
		if err != nil {
			r.warnf("the child token at index %d is invalid: %s", i, err)
			bad = true
			continue
		}
		if !r.checkNew(id) {
			r.warnf("the child node at index %d is invalid", i)
			bad = true
			continue
		}
		n := treebuffer.NewNode(data)
		r.ids.put(id, n)
		childIDs = append(childIDs, id)
		children = append(children, n)
	}

	parent, parentOK := r.lookupOld(parentID)
	if !parentOK {
		r.warnf("invalid parent id")
		bad = true
	}

	if bad {
		for _, id := range childIDs {
			r.ids.remove(id)
		}
		return
	}

	r.tree.Expand(parent, children)
	r.ids.remove(parentID)
}

func (r *REPL) doHistory(args []string) {
	if r.tree == nil {
		r.warnf("no tree initialized")
		return
	}
	if len(args) < 1 {
		r.warnf("no node id after history command")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		r.warnf("no node id after history command. Ignoring %s", args[0])
		return
	}
	node, ok := r.lookupOld(id)
	if !ok {
		r.warnf("invalid node id")
		return
	}

	out := make([]*treebuffer.Node, r.tree.History()+1)
	n := r.tree.History(node, out)

	fmt.Fprint(r.out, "H:")
	for i := 0; i < n; i++ {
		fmt.Fprintf(r.out, " %d", out[i].Data())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) doHelp() {
	fmt.Fprint(r.out, helpText)
}

const helpText = `COMMANDS:
  initialize HISTORY ALGORITHM ROOT_ID[:ROOT_DATA]
  add_child PARENT_ID NEW_ID[:NEW_DATA]
  deactivate NODE_ID
  expand PARENT_ID NEW_ID1[:NEW_DATA1] NEW_ID2[:NEW_DATA2] ...
  history NODE_ID
  help
ALGORITHM is one of: naive gc amortized real-time
IDs and DATA are integers
`

// lookupOld resolves id against the identifier table, reporting the
// range check spec §6 attaches to every node id the REPL accepts.
func (r *REPL) lookupOld(id int) (*treebuffer.Node, bool) {
	if !r.ids.inRange(id) {
		r.warnf("node id outside [0, %d)", maxNodeID)
		return nil, false
	}
	if !r.ids.isOld(id) {
		r.warnf("%d is not old", id)
		return nil, false
	}
	return r.ids.get(id), true
}

// checkNew reports whether id is in range and not already claimed,
// without itself registering anything.
func (r *REPL) checkNew(id int) bool {
	if !r.ids.inRange(id) {
		r.warnf("node id outside [0, %d)", maxNodeID)
		return false
	}
	if !r.ids.isNew(id) {
		r.warnf("%d is not new", id)
		return false
	}
	return true
}
