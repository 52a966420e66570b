// Package pkg provides the core libraries for figlayout, the layout engine of
// a finite-state-machine diagram editor.
//
// # Overview
//
// A layout algorithm repositions a set of figures and returns an undoable
// edit. The pkg directory is organized into these areas:
//
//  1. [figure] - Documents, figures, geometry and transitions
//  2. [layout] - Layout algorithms (grid, layered, force) and their registry
//  3. [edit] and [history] - Undoable edits and the bounded undo stack
//  4. [editor] - The invoker that runs layouts and records their edits
//  5. [diagram] and [export] - JSON documents and DOT/SVG/GraphML output
//  6. [pipeline], [cache] and [config] - The CLI's cached load → layout → export run
//
// # Architecture
//
// The typical data flow through figlayout:
//
//	diagram.json
//	     ↓
//	[diagram] package (decode into a figure.Document)
//	     ↓
//	[editor] package (select figures, run a [layout] algorithm)
//	     ↓
//	[edit] + [history] (record the move for undo/redo)
//	     ↓
//	[export] package (JSON/DOT/SVG/GraphML)
//
// # Quick Start
//
//	doc, _ := diagram.ReadFile("machine.json")
//	ed := editor.New(doc, editor.Options{})
//	l, _ := layout.New("layered", doc, layout.Config{})
//	e, err := ed.ApplyLayout(ctx, l)
//	if err != nil {
//	    // nothing moved
//	}
//	fmt.Println(e.Len(), "figures moved")
//	_, _ = ed.Undo(ctx)
//
// # Subpackages
//
//   - [figure]: Document model with exact geometry equality
//   - [layout]: FigureLayout interface and reference algorithms
//   - [edit]: Before/after snapshots with stale-reference detection
//   - [history]: Undo/redo stack with redo truncation and eviction
//   - [editor]: Serialised layout, undo and redo with hooks and logging
//   - [diagram]: JSON document format
//   - [export]: DOT, Graphviz SVG and GraphML exporters
//   - [cache]: File, Redis and null caches with hashed keys
//   - [config]: TOML settings
//   - [pipeline]: Cached runner behind the CLI
//   - [observability]: Layout, history and cache hooks
//   - [errors]: Coded errors and figure errors
//   - [buildinfo]: Version information set at build time
package pkg
