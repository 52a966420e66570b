package layout_test

import (
	"fmt"

	"github.com/matzehuels/figlayout/pkg/figure"
	"github.com/matzehuels/figlayout/pkg/layout"
)

func ExampleGrid() {
	doc := figure.NewDocument()
	_, _ = doc.Add(figure.Figure{ID: "idle", Geometry: figure.Rect(0, 0, 80, 40)})
	_, _ = doc.Add(figure.Figure{ID: "busy", Geometry: figure.Rect(0, 0, 80, 40)})
	_, _ = doc.Add(figure.Figure{ID: "done", Geometry: figure.Rect(0, 0, 80, 40)})

	grid, _ := layout.NewGrid(layout.GridOptions{Columns: 2})
	e, _ := grid.Layout(doc.Figures())
	for _, f := range doc.Figures() {
		fmt.Println(f.ID, f.Geometry)
	}
	fmt.Println("kind:", e.Kind(), "moved:", e.Len())

	_ = e.Undo(doc)
	f, _ := doc.Figure("done")
	fmt.Println("after undo:", f.Geometry)
	// Output:
	// idle 0,0 80x40
	// busy 120,0 80x40
	// done 0,80 80x40
	// kind: reversible moved: 2
	// after undo: 0,0 80x40
}

func ExampleLayered_Plan() {
	doc := figure.NewDocument()
	for _, id := range []figure.ID{"idle", "running", "done"} {
		_, _ = doc.Add(figure.Figure{ID: id, Geometry: figure.Rect(0, 0, 60, 30)})
	}
	_ = doc.Connect(figure.Connection{From: "idle", To: "running"})
	_ = doc.Connect(figure.Connection{From: "running", To: "done"})
	_ = doc.Connect(figure.Connection{From: "running", To: "idle"})

	l, _ := layout.NewLayered(doc, layout.LayeredOptions{})
	plan, _ := l.Plan(doc.Figures())
	fmt.Println("layers:", plan.Layers)
	fmt.Println("reversed:", plan.Reversed)
	// Output:
	// layers: [[idle] [running] [done]]
	// reversed: 1
}

func ExampleNew() {
	l, err := layout.New("spiral", nil, layout.Config{})
	fmt.Println(l == nil, err)
	// Output:
	// true UNKNOWN_ALGORITHM: unknown layout algorithm "spiral" (available: force, grid, layered)
}
