// SPDX-License-Identifier: MIT

// Package repl implements the line-oriented command interpreter spec.md
// §6 specifies as an external collaborator of the core treebuffer
// package: command parsing, the user-facing identifier table mapping
// small integer handles to *treebuffer.Node, and W:/E: diagnostics.
//
// The REPL talks to treebuffer only through its exported contract
// (NewNode, Initialize, AddChild, Deactivate, Expand, History, Active,
// NextActive, Start/StopStats). It never reaches into core internals,
// and the core package has no notion of the identifier table defined
// here — ownership of "which small integer names which Node" is purely
// a REPL-side concern, matching spec.md's placement of the identifier
// table outside the core's scope.
package repl
