package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/figlayout/pkg/figure"
)

func TestLayeredPlan(t *testing.T) {
	d := machine(t)
	l, _ := NewLayered(d, LayeredOptions{})
	plan, err := l.Plan(d.Figures())
	if err != nil {
		t.Fatal(err)
	}

	want := [][]figure.ID{{"idle"}, {"running"}, {"done", "failed"}}
	if len(plan.Layers) != len(want) {
		t.Fatalf("got %d layers, want %d: %v", len(plan.Layers), len(want), plan.Layers)
	}
	for i := range want {
		if !slices.Equal(plan.Layers[i], want[i]) {
			t.Errorf("layer %d = %v, want %v", i, plan.Layers[i], want[i])
		}
	}
	if plan.Reversed != 1 {
		t.Errorf("Reversed = %d, want 1 (failed -> idle)", plan.Reversed)
	}
	if plan.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", plan.Crossings)
	}
}

func TestLayeredReducesCrossings(t *testing.T) {
	d := figure.NewDocument()
	for _, id := range []figure.ID{"a", "b", "c", "x"} {
		d.Add(figure.Figure{ID: id, Geometry: figure.Rect(0, 0, 40, 20)})
	}
	d.Connect(figure.Connection{From: "a", To: "x"})
	d.Connect(figure.Connection{From: "b", To: "c"})

	l, _ := NewLayered(d, LayeredOptions{})
	plan, err := l.Plan(d.Figures())
	if err != nil {
		t.Fatal(err)
	}
	if plan.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", plan.Crossings)
	}
	if want := []figure.ID{"x", "c"}; !slices.Equal(plan.Layers[1], want) {
		t.Errorf("layer 1 = %v, want %v", plan.Layers[1], want)
	}
}

func TestLayeredPlacement(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want map[figure.ID]figure.Point
	}{
		{
			name: "TopToBottom",
			dir:  TopToBottom,
			want: map[figure.ID]figure.Point{
				"idle":    {X: 68, Y: 7},
				"running": {X: 58, Y: 107},
				"done":    {X: 13, Y: 207},
				"failed":  {X: 113, Y: 212},
			},
		},
		{
			name: "LeftToRight",
			dir:  LeftToRight,
			want: map[figure.ID]figure.Point{
				"idle":    {X: 13, Y: 62},
				"running": {X: 153, Y: 62},
				"done":    {X: 328, Y: 7},
				"failed":  {X: 313, Y: 107},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := machine(t)
			l, err := NewLayered(d, LayeredOptions{Direction: tt.dir})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := l.Layout(d.Figures()); err != nil {
				t.Fatalf("Layout() error = %v", err)
			}
			for id, p := range tt.want {
				f, _ := d.Figure(id)
				if f.Geometry.X != p.X || f.Geometry.Y != p.Y {
					t.Errorf("%s at (%v, %v), want (%v, %v)", id, f.Geometry.X, f.Geometry.Y, p.X, p.Y)
				}
			}
			assertNoOverlap(t, d.Figures())
		})
	}
}

func TestLayeredIdempotent(t *testing.T) {
	for _, dir := range []Direction{TopToBottom, LeftToRight} {
		t.Run(string(dir), func(t *testing.T) {
			d := machine(t)
			l, _ := NewLayered(d, LayeredOptions{Direction: dir})
			if _, err := l.Layout(d.Figures()); err != nil {
				t.Fatal(err)
			}
			e, err := l.Layout(d.Figures())
			if err != nil {
				t.Fatal(err)
			}
			if !e.IsNoop() {
				t.Errorf("second Layout() = %v with %d moves, want noop", e.Kind(), e.Len())
			}
		})
	}
}

func TestLayeredWithoutConnections(t *testing.T) {
	d := machine(t)
	l, _ := NewLayered(nil, LayeredOptions{})
	plan, err := l.Plan(d.Figures())
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Layers) != 1 || len(plan.Layers[0]) != d.Len() {
		t.Errorf("Layers = %v, want a single layer of %d", plan.Layers, d.Len())
	}
}

func TestLayerCrossings(t *testing.T) {
	// 0 -> 3, 1 -> 2 cross once when the lower layer is [2, 3].
	succ := [][]int{{3}, {2}, nil, nil}
	if got := layerCrossings([]int{0, 1}, []int{2, 3}, succ); got != 1 {
		t.Errorf("layerCrossings() = %d, want 1", got)
	}
	if got := layerCrossings([]int{0, 1}, []int{3, 2}, succ); got != 0 {
		t.Errorf("layerCrossings() = %d, want 0", got)
	}
}

func TestBreakCyclesLeavesDAG(t *testing.T) {
	succ := [][]int{{1}, {2}, {0, 3}, {1}}
	removed := breakCycles(succ)
	if removed != 2 {
		t.Errorf("breakCycles() = %d, want 2", removed)
	}
	layers := assignLayers(succ)
	for u, out := range succ {
		for _, v := range out {
			if layers[v] <= layers[u] {
				t.Errorf("edge %d -> %d not downward: layers %d, %d", u, v, layers[u], layers[v])
			}
		}
	}
}
