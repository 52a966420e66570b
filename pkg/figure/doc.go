// Package figure defines the diagram model that layout algorithms operate on.
//
// A [Document] owns a set of [Figure] values (states, initial/final markers and
// notes of a finite-state-machine diagram) together with the [Connection]
// transitions between them. Figures carry a [Geometry]: a top-left position
// and a size. Layout algorithms receive an ordered [Set] of figures selected
// from a document and mutate their geometry in place.
//
// # Identity
//
// Every figure has a stable [ID]. When a figure is added without one, the
// document assigns a random UUID. IDs are never reused: once a figure is
// removed its ID is retired, so an undo record that still references it is
// detected as stale instead of silently touching a newer figure.
//
// # Geometry Equality
//
// [Geometry.Equal] compares coordinates bit-for-bit. Undo must restore the
// exact floating point values a figure had before a layout, so approximate
// comparison is deliberately not offered here.
//
// # Concurrency
//
// Document is not safe for concurrent use. The editor serialises access.
package figure
