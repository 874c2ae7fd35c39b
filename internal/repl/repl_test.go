// SPDX-License-Identifier: MIT

package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, script string) (out, diag string) {
	t.Helper()
	var outBuf, diagBuf bytes.Buffer
	r := New(&outBuf, &diagBuf, "")
	err := r.Run(NewScannerSource(strings.NewReader(script)))
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return outBuf.String(), diagBuf.String()
}

// S1 round-tripped through the REPL surface: a chain shorter than
// history is reported in full, newest first.
func TestReplHistoryWithinBound(t *testing.T) {
	out, diag := run(t, `
initialize 3 naive 0
add_child 0 1
add_child 1 2
history 2
`)
	assert.Empty(t, diag)
	assert.Equal(t, "H: 2 1 0\n", out)
}

// S2 round-tripped through the REPL: a chain longer than history is
// truncated once the mark sweep reclaims the root.
func TestReplHistoryBeyondBoundAfterSweep(t *testing.T) {
	out, diag := run(t, `
initialize 2 gc 0
add_child 0 1
add_child 1 2
deactivate 0
deactivate 1
history 2
`)
	assert.Empty(t, diag)
	assert.Equal(t, "H: 2 1\n", out)
}

// expand must behave like the equivalent add_child/deactivate sequence:
// each new child's history runs straight to the (now inactive) parent.
func TestReplExpandMatchesAddChildSequence(t *testing.T) {
	out, diag := run(t, `
initialize 4 real-time 0
expand 0 1 2 3
history 1
history 2
history 3
`)
	assert.Empty(t, diag)
	assert.Equal(t, "H: 1 0\nH: 2 0\nH: 3 0\n", out)
}

// DATA defaults to ID when the ID:DATA token omits the colon form.
func TestReplNodeDataDefaultsToID(t *testing.T) {
	out, diag := run(t, `
initialize 2 naive 7
add_child 7 9:99
history 9
`)
	assert.Empty(t, diag)
	assert.Equal(t, "H: 99 7\n", out)
}

func TestReplUnknownCommandWarns(t *testing.T) {
	_, diag := run(t, "frobnicate 1 2 3\n")
	assert.Contains(t, diag, "W:")
}

func TestReplDuplicateNodeIDWarns(t *testing.T) {
	_, diag := run(t, `
initialize 2 naive 0
add_child 0 1
add_child 0 1
`)
	assert.Contains(t, diag, "W:")
	assert.Contains(t, diag, "not new")
}

func TestReplHistoryOnUnknownNodeWarns(t *testing.T) {
	_, diag := run(t, `
initialize 2 naive 0
history 42
`)
	assert.Contains(t, diag, "W:")
	assert.Contains(t, diag, "not old")
}

func TestReplCommandsBeforeInitializeWarn(t *testing.T) {
	_, diag := run(t, "add_child 0 1\n")
	assert.Contains(t, diag, "no tree initialized")
}

func TestReplExpandRollsBackOnBadChild(t *testing.T) {
	// Node 0 is the only valid id; the second child token reuses it,
	// which must fail the whole batch and leave id 5 free to reuse.
	out, diag := run(t, `
initialize 2 naive 0
expand 0 5 0
add_child 0 5
history 5
`)
	assert.Contains(t, diag, "W:")
	assert.Equal(t, "H: 5 0\n", out)
}

func TestReplHelpPrintsCommandSummary(t *testing.T) {
	out, _ := run(t, "help\n")
	assert.Contains(t, out, "initialize HISTORY ALGORITHM ROOT_ID")
	assert.Contains(t, out, "ALGORITHM is one of: naive gc amortized real-time")
}

func TestReplBlankAndCommentLinesAreIgnored(t *testing.T) {
	out, diag := run(t, `
# a comment

initialize 2 naive 0
# another comment
history 0
`)
	assert.Empty(t, diag)
	assert.Equal(t, "H: 0\n", out)
}

func TestReplReinitializeDiscardsOldTree(t *testing.T) {
	out, diag := run(t, `
initialize 2 naive 0
add_child 0 1
initialize 2 naive 1
history 1
`)
	assert.Empty(t, diag)
	assert.Equal(t, "H: 1\n", out)
}
