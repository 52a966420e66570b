// Package diagram reads and writes state machine diagrams as JSON.
//
// The format is the on-disk representation of a [figure.Document]:
//
//	{
//	  "figures": [
//	    {"id": "idle", "kind": "initial", "x": 0, "y": 0, "width": 80, "height": 40},
//	    {"id": "busy", "label": "Busy", "x": 120, "y": 0, "width": 80, "height": 40, "locked": true}
//	  ],
//	  "transitions": [
//	    {"from": "idle", "to": "busy", "label": "start"}
//	  ]
//	}
//
// Figures and transitions are written in document order, so equal documents
// serialize to identical bytes. Figures without an id receive a generated one
// on import.
//
// [MarshalPositions] and [UnmarshalPositions] encode bare geometry keyed by
// figure id, the form in which computed layouts are cached.
package diagram
