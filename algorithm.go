// SPDX-License-Identifier: MIT

package treebuffer

import (
	"fmt"
	"strings"
)

// Algorithm selects one of the four interchangeable reclamation
// disciplines a Tree runs. All four share the same Node representation
// and the same five-operation contract; they differ only in when and how
// nodes that have fallen outside every active node's history window are
// reclaimed. Fixed at Initialize time — a Tree's algorithm never changes.
type Algorithm int

const (
	// Naive never reclaims anything; internal nodes accumulate forever.
	Naive Algorithm = iota
	// Mark runs a full stop-the-world mark-and-sweep after every Deactivate.
	Mark
	// Amortized runs the same sweep as Mark, but only when the live node
	// count has doubled since the last sweep.
	Amortized
	// RealTime maintains a depth/representative scheme and reclaims at
	// most one node per AddChild.
	RealTime
)

var algorithmNames = [...]string{
	Naive:     "naive",
	Mark:      "gc",
	Amortized: "amortized",
	RealTime:  "real-time",
}

// String returns the canonical REPL name of a, as it would appear typed
// out in full in an `initialize` command.
func (a Algorithm) String() string {
	if int(a) < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm resolves s against {naive, gc, amortized, real-time} by
// unique-prefix match, the grammar spec.md's REPL surface specifies for
// its ALGO token.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return 0, fmt.Errorf("treebuffer: empty algorithm name")
	}
	var found Algorithm
	matches := 0
	for a, name := range algorithmNames {
		if strings.HasPrefix(name, s) {
			found = Algorithm(a)
			matches++
		}
	}
	switch matches {
	case 0:
		return 0, fmt.Errorf("treebuffer: %q does not match any algorithm name in %v", s, algorithmNames)
	case 1:
		return found, nil
	default:
		return 0, fmt.Errorf("treebuffer: %q is ambiguous between multiple algorithm names", s)
	}
}
