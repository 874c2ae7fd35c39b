// SPDX-License-Identifier: MIT

package repl

import (
	"fmt"
	"strconv"
	"strings"
)

// commandNames lists the REPL's six commands in the order main.c's
// command_list declares them. Matched the same way spec.md documents for
// ALGO: unique-prefix.
var commandNames = [...]string{"initialize", "add_child", "deactivate", "expand", "history", "help"}

const (
	cmdInitialize = iota
	cmdAddChild
	cmdDeactivate
	cmdExpand
	cmdHistory
	cmdHelp
)

// matchCommand resolves tok against commandNames by unique-prefix match,
// the same discipline core's ParseAlgorithm applies to ALGO tokens.
func matchCommand(tok string) (int, error) {
	if tok == "" {
		return -1, fmt.Errorf("empty command")
	}
	found, matches := -1, 0
	for i, name := range commandNames {
		if strings.HasPrefix(name, tok) {
			found, matches = i, matches+1
		}
	}
	switch matches {
	case 0:
		return -1, fmt.Errorf("%s doesn't match any of %v. Ignoring", tok, commandNames)
	case 1:
		return found, nil
	default:
		return -1, fmt.Errorf("%s matches more than one command. Ignoring", tok)
	}
}

// parseNode parses one ID[:DATA] token, the grammar spec.md's REPL
// surface uses for root/child identifiers throughout `initialize`,
// `add_child`, and `expand`. DATA defaults to ID when omitted, matching
// main.c's parse_node (`*data = *id` before the optional `:%d` scan).
func parseNode(tok string) (id, data int, err error) {
	idStr, dataStr, hasData := strings.Cut(tok, ":")
	id, err = strconv.Atoi(idStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a valid id", tok)
	}
	if !hasData {
		return id, id, nil
	}
	data, err = strconv.Atoi(dataStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a valid id:data pair", tok)
	}
	return id, data, nil
}
