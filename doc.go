// SPDX-License-Identifier: MIT

// Package treebuffer maintains a dynamically growing rooted tree in which
// only a bounded active frontier of leaves is of interest to the client,
// and in which ancestors that fall outside a fixed-depth history window
// above that frontier are reclaimed.
//
// A Tree is constructed with one of four interchangeable reclamation
// disciplines — Naive, Mark, Amortized, RealTime — all sharing the same
// Node representation and the same five-operation contract
// (Initialize/AddChild/Deactivate/Expand/History). The disciplines differ
// only in when and how aggressively they reclaim nodes that have fallen
// out of every active node's history window; their observable results
// (history queries, frontier iteration) are identical.
//
// Every mutating or querying operation resets and reports a mems counter:
// a unit-less count of Node field accesses the operation performed, meant
// as an implementation-independent proxy for work. It is the instrument
// this package exists to support — the point of offering four algorithms
// is to compare their cost profiles.
package treebuffer
