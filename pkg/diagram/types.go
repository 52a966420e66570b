package diagram

import (
	"fmt"

	"github.com/matzehuels/figlayout/pkg/figure"
)

// =============================================================================
// Diagram - Serialization Format
// =============================================================================

// Diagram is the canonical serialization format for documents.
type Diagram struct {
	Figures     []Figure     `json:"figures"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// Figure is a serialized figure.
type Figure struct {
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label,omitempty"`
	Kind   string  `json:"kind,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Locked bool    `json:"locked,omitempty"`
}

// Transition is a serialized connection between two figures.
type Transition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// =============================================================================
// Conversion
// =============================================================================

// FromDocument converts a document to its serialization format.
func FromDocument(d *figure.Document) Diagram {
	figs := d.Figures()
	out := Diagram{Figures: make([]Figure, len(figs))}
	for i, f := range figs {
		out.Figures[i] = Figure{
			ID:     string(f.ID),
			Label:  f.Label,
			Kind:   string(f.Kind),
			X:      f.Geometry.X,
			Y:      f.Geometry.Y,
			Width:  f.Geometry.Width,
			Height: f.Geometry.Height,
			Locked: f.Locked,
		}
	}
	for _, c := range d.Connections() {
		out.Transitions = append(out.Transitions, Transition{From: string(c.From), To: string(c.To), Label: c.Label})
	}
	return out
}

// ToDocument builds a document, validating every figure and transition.
func ToDocument(dg Diagram) (*figure.Document, error) {
	d := figure.NewDocument()
	for i, f := range dg.Figures {
		_, err := d.Add(figure.Figure{
			ID:       figure.ID(f.ID),
			Label:    f.Label,
			Kind:     figure.Kind(f.Kind),
			Geometry: figure.Rect(f.X, f.Y, f.Width, f.Height),
			Locked:   f.Locked,
		})
		if err != nil {
			return nil, fmt.Errorf("figure %d: %w", i, err)
		}
	}
	for i, t := range dg.Transitions {
		if err := d.Connect(figure.Connection{From: figure.ID(t.From), To: figure.ID(t.To), Label: t.Label}); err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
	}
	return d, nil
}
