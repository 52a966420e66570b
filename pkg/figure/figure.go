package figure

// ID uniquely identifies a figure within a document.
type ID string

// Kind distinguishes the visual role of a figure.
type Kind string

// Figure kinds.
const (
	KindState   Kind = "state"
	KindInitial Kind = "initial"
	KindFinal   Kind = "final"
	KindNote    Kind = "note"
)

// ValidKinds is the set of supported figure kinds.
var ValidKinds = map[Kind]bool{
	KindState:   true,
	KindInitial: true,
	KindFinal:   true,
	KindNote:    true,
}

// Figure is a positioned, sized node of the diagram.
//
// Locked figures may be part of a layout selection but must not be moved;
// algorithms that would move them fail instead.
type Figure struct {
	ID       ID
	Label    string
	Kind     Kind
	Geometry Geometry
	Locked   bool
}

// DisplayLabel returns the label if set, otherwise the ID.
func (f *Figure) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return string(f.ID)
}

// SetGeometry replaces the figure's position and size.
func (f *Figure) SetGeometry(g Geometry) { f.Geometry = g }

// Connection is a directed transition between two figures.
type Connection struct {
	From  ID
	To    ID
	Label string
}

// IsSelfLoop reports whether the connection starts and ends at the same figure.
func (c Connection) IsSelfLoop() bool { return c.From == c.To }
