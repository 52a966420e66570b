package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/figlayout/pkg/figure"
)

func pair(t *testing.T) *figure.Document {
	t.Helper()
	d := figure.NewDocument()
	d.Add(figure.Figure{ID: "a", Geometry: figure.Rect(0, 0, 40, 40)})
	d.Add(figure.Figure{ID: "b", Geometry: figure.Rect(300, 0, 40, 40)})
	if err := d.Connect(figure.Connection{From: "a", To: "b"}); err != nil {
		t.Fatal(err)
	}
	return d
}

func centerDistance(a, b figure.Geometry) float64 {
	ca, cb := a.Center(), b.Center()
	return math.Hypot(ca.X-cb.X, ca.Y-cb.Y)
}

func TestForceConverges(t *testing.T) {
	d := pair(t)
	f, _ := NewForce(d, ForceOptions{})
	targets, stats, err := f.Compute(d.Figures())
	if err != nil {
		t.Fatal(err)
	}

	if stats.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", stats.Iterations, DefaultIterations)
	}
	if stats.MaxStep > stats.FinalTemperature {
		t.Errorf("MaxStep %v exceeds final temperature %v", stats.MaxStep, stats.FinalTemperature)
	}
	if got := centerDistance(targets[0], targets[1]); math.Abs(got-DefaultIdealLength) > 0.05*DefaultIdealLength {
		t.Errorf("connected distance = %v, want within 5%% of %v", got, DefaultIdealLength)
	}
}

func TestForceDeterministic(t *testing.T) {
	run := func() []figure.Geometry {
		d := machine(t)
		f, _ := NewForce(d, ForceOptions{Iterations: 50, Seed: 7})
		if _, err := f.Layout(d.Figures()); err != nil {
			t.Fatal(err)
		}
		return d.Figures().Geometries()
	}
	first, second := run(), run()
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("figure %d: %v then %v", i, first[i], second[i])
		}
	}
}

func TestForceSeparatesCoincident(t *testing.T) {
	d := figure.NewDocument()
	for _, id := range []figure.ID{"a", "b", "c"} {
		d.Add(figure.Figure{ID: id, Geometry: figure.Rect(10, 10, 20, 20)})
	}
	f, _ := NewForce(nil, ForceOptions{Iterations: 20})
	if _, err := f.Layout(d.Figures()); err != nil {
		t.Fatal(err)
	}
	set := d.Figures()
	for i := range set {
		for j := i + 1; j < len(set); j++ {
			if set[i].Geometry.Equal(set[j].Geometry) {
				t.Errorf("%s and %s still coincide", set[i].ID, set[j].ID)
			}
		}
	}
}

func TestForcePinsLockedFigures(t *testing.T) {
	d := pair(t)
	a, _ := d.Figure("a")
	a.Locked = true
	want := a.Geometry

	f, _ := NewForce(d, ForceOptions{})
	e, err := f.Layout(d.Figures())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if !a.Geometry.Equal(want) {
		t.Errorf("locked figure moved to %v", a.Geometry)
	}
	if e.Len() != 1 {
		t.Errorf("edit captured %d figures, want 1", e.Len())
	}
	b, _ := d.Figure("b")
	if got := centerDistance(a.Geometry, b.Geometry); math.Abs(got-DefaultIdealLength) > 0.05*DefaultIdealLength {
		t.Errorf("distance to pinned figure = %v, want near %v", got, DefaultIdealLength)
	}
}

func TestNewForceDefaults(t *testing.T) {
	f, err := NewForce(nil, ForceOptions{IdealLength: 80})
	if err != nil {
		t.Fatal(err)
	}
	if f.opts.Temperature != 80 || f.opts.Iterations != DefaultIterations || f.opts.Seed != DefaultSeed {
		t.Errorf("opts = %+v", f.opts)
	}
	if _, err := NewForce(nil, ForceOptions{Iterations: -1}); err == nil {
		t.Error("NewForce() accepted negative iterations")
	}
}
