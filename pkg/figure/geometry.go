package figure

import (
	"fmt"
	"math"

	"github.com/matzehuels/figlayout/pkg/errors"
)

// Point is a 2D coordinate in diagram space.
type Point struct {
	X, Y float64
}

// Geometry is the position (top-left corner) and size of a figure.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is a convenience constructor for Geometry.
func Rect(x, y, w, h float64) Geometry {
	return Geometry{X: x, Y: y, Width: w, Height: h}
}

// Equal reports whether g and o are identical bit-for-bit.
// NaN payloads and signed zeros are distinguished.
func (g Geometry) Equal(o Geometry) bool {
	return math.Float64bits(g.X) == math.Float64bits(o.X) &&
		math.Float64bits(g.Y) == math.Float64bits(o.Y) &&
		math.Float64bits(g.Width) == math.Float64bits(o.Width) &&
		math.Float64bits(g.Height) == math.Float64bits(o.Height)
}

// MaxX returns the right edge.
func (g Geometry) MaxX() float64 { return g.X + g.Width }

// MaxY returns the bottom edge.
func (g Geometry) MaxY() float64 { return g.Y + g.Height }

// Center returns the midpoint of the figure.
func (g Geometry) Center() Point {
	return Point{X: g.X + g.Width/2, Y: g.Y + g.Height/2}
}

// MoveTo returns g with its top-left corner at (x, y). Size is unchanged.
func (g Geometry) MoveTo(x, y float64) Geometry {
	g.X, g.Y = x, y
	return g
}

// CenterAt returns g translated so that its center is at p.
func (g Geometry) CenterAt(p Point) Geometry {
	return g.MoveTo(p.X-g.Width/2, p.Y-g.Height/2)
}

// Overlaps reports whether the interiors of g and o intersect.
// Figures that merely touch along an edge do not overlap.
func (g Geometry) Overlaps(o Geometry) bool {
	return g.X < o.MaxX() && o.X < g.MaxX() && g.Y < o.MaxY() && o.Y < g.MaxY()
}

// Union returns the smallest geometry containing both g and o.
func (g Geometry) Union(o Geometry) Geometry {
	minX, minY := math.Min(g.X, o.X), math.Min(g.Y, o.Y)
	maxX, maxY := math.Max(g.MaxX(), o.MaxX()), math.Max(g.MaxY(), o.MaxY())
	return Geometry{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Validate checks that the geometry is finite with a non-negative size.
// The returned error names the figure id.
func (g Geometry) Validate(id ID) error {
	return errors.ValidateExtent(string(id), g.X, g.Y, g.Width, g.Height)
}

// String renders the geometry as "x,y wxh".
func (g Geometry) String() string {
	return fmt.Sprintf("%g,%g %gx%g", g.X, g.Y, g.Width, g.Height)
}
