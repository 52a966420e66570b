// Package export converts laid-out documents into interchange formats.
//
// Exporters only read final geometry; they never move figures.
//
//   - DOT: Graphviz source with every figure pinned at its position
//   - SVG: the DOT output rendered by Graphviz (neato, pinned positions)
//   - GraphML: XML with position and size attributes per node
//   - JSON: the native diagram format, see package diagram
//
// Use [Export] to produce any format by name.
package export
