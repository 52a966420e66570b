package figure

// Set is an ordered selection of figures handed to a layout algorithm.
// The caller owns the figures; algorithms only change their geometry.
type Set []*Figure

// IDs returns the figure IDs in order.
func (s Set) IDs() []ID {
	ids := make([]ID, len(s))
	for i, f := range s {
		ids[i] = f.ID
	}
	return ids
}

// Contains reports whether a figure with the ID is in the set.
func (s Set) Contains(id ID) bool {
	for _, f := range s {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Index maps each figure ID to its position in the set.
func (s Set) Index() map[ID]int {
	m := make(map[ID]int, len(s))
	for i, f := range s {
		m[f.ID] = i
	}
	return m
}

// Bounds returns the bounding box of all figures, or false for an empty set.
func (s Set) Bounds() (Geometry, bool) {
	if len(s) == 0 {
		return Geometry{}, false
	}
	b := s[0].Geometry
	for _, f := range s[1:] {
		b = b.Union(f.Geometry)
	}
	return b, true
}

// Geometries returns the current geometry of every figure, in order.
func (s Set) Geometries() []Geometry {
	out := make([]Geometry, len(s))
	for i, f := range s {
		out[i] = f.Geometry
	}
	return out
}

// Within returns the connections whose endpoints are both in the set.
func (s Set) Within(conns []Connection) []Connection {
	idx := s.Index()
	var out []Connection
	for _, c := range conns {
		_, okFrom := idx[c.From]
		_, okTo := idx[c.To]
		if okFrom && okTo {
			out = append(out, c)
		}
	}
	return out
}
