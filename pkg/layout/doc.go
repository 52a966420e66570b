// Package layout provides pluggable algorithms that reposition diagram figures.
//
// Every algorithm implements [FigureLayout]: it receives an ordered
// [figure.Set], moves the figures in place and returns an [edit.Edit] that the
// caller can push onto an undo history.
//
// # Algorithms
//
//   - [Grid]: row-major placement in uniform cells. Stable fixed point.
//   - [Layered]: hierarchical placement along transitions (cycle breaking,
//     longest-path layering, barycentric crossing reduction). Stable fixed point.
//   - [Force]: Fruchterman-Reingold simulation with a fixed iteration bound.
//   - [Fixed]: replays precomputed geometry, e.g. a cached layout result.
//
// Use [New] to construct an algorithm by name from a [Config].
//
// # Commit Semantics
//
// Layout is all-or-nothing. Algorithms compute every target geometry first;
// the shared commit step then validates all targets and only afterwards
// writes them. If any figure cannot be placed (non-finite geometry, a locked
// figure that would move, a figure listed twice) an error naming the figure
// is returned and no figure is modified.
//
// Layout never returns a nil edit on success. An empty set, or a set already
// in its target arrangement, yields an [edit.Noop] edit.
//
// # Determinism
//
// All algorithms are deterministic for a given input order and options.
// Force uses a seeded PCG source only to separate coincident figures.
//
// # Concurrency
//
// Algorithms hold no shared mutable state beyond per-call statistics and
// must not be invoked concurrently on overlapping sets. The editor serialises
// calls.
package layout
