// SPDX-License-Identifier: MIT

package repl

import (
	"bufio"
	"errors"
	"io"

	"github.com/peterh/liner"
)

// lineBufferSize mirrors main.c's fixed-size line buffer (buffer_size =
// 1<<10). A line that doesn't fit is not a recoverable parse warning —
// spec.md §6 assigns it its own fatal exit code (2).
const lineBufferSize = 1 << 10

// ErrLineTooLong is the line-buffer-overflow condition spec.md §6 maps
// to exit code 2.
var ErrLineTooLong = errors.New("repl: line exceeds the fixed line buffer")

// LineSource yields successive command lines. It is the Go analogue of
// main.c's read_t function pointer: one implementation reads plainly
// from a file or pipe (get_line_from_file), the other prompts an
// interactive terminal with history (get_line_with_prompt).
type LineSource interface {
	// ReadLine returns the next line and true, or ("", false) at EOF.
	ReadLine() (string, bool)
	// Err returns ErrLineTooLong if EOF was reached because a line
	// overflowed the fixed buffer, else nil.
	Err() error
}

// scannerSource reads lines plainly, with no prompt and no history —
// the mode used for scripted input files and for piped/non-interactive
// stdin, and the one exercised by this repository's round-trip tests.
type scannerSource struct {
	sc         *bufio.Scanner
	overflowed bool
}

func NewScannerSource(r io.Reader) LineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, lineBufferSize), lineBufferSize)
	return &scannerSource{sc: sc}
}

func (s *scannerSource) ReadLine() (string, bool) {
	if s.sc.Scan() {
		return s.sc.Text(), true
	}
	if errors.Is(s.sc.Err(), bufio.ErrTooLong) {
		s.overflowed = true
	}
	return "", false
}

func (s *scannerSource) Err() error {
	if s.overflowed {
		return ErrLineTooLong
	}
	return nil
}

// linerSource reads from an interactive terminal through peterh/liner,
// printing a "> " prompt and recording each accepted line in the
// session's line-edit history — the mode main.c's get_line_with_prompt
// used for its default, no-argument invocation.
type linerSource struct {
	state *liner.State
}

func NewLinerSource(state *liner.State) LineSource {
	return &linerSource{state: state}
}

func (s *linerSource) ReadLine() (string, bool) {
	line, err := s.state.Prompt("> ")
	if err != nil {
		return "", false
	}
	s.state.AppendHistory(line)
	return line, true
}

func (s *linerSource) Err() error { return nil }
