// Package nav resolves flat content records into an ordered navigation forest
// and answers breadcrumb queries against it.
//
// # Pipeline
//
//  1. Resolve groups records by their declared parent and sorts every sibling
//     group with Compare (pinned first, then numeric order, then input order).
//  2. BuildGraph walks the forest and records a "child depends on parent"
//     edge per node in a graph.DepGraph.
//  3. Breadcrumbs asks the graph for every ancestor of a key, root first.
//
// Everything is derived from the caller's records on each call. Nothing is
// cached and the records are never modified, so all functions may be called
// concurrently over the same slice.
//
// # Keys
//
// Keys must be unique across the whole record set, not just among siblings.
// BuildGraph rejects duplicates with ErrDuplicateKey. Parent references that
// loop back on themselves are reported by Resolve as ErrStructuralCycle
// rather than recursing forever.
package nav
