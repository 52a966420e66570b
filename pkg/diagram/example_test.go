package diagram_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/figlayout/pkg/diagram"
	"github.com/matzehuels/figlayout/pkg/figure"
)

func ExampleRead() {
	d, err := diagram.Read(strings.NewReader(`{
		"figures": [
			{"id": "off", "kind": "initial", "width": 60, "height": 30},
			{"id": "on", "x": 100, "width": 60, "height": 30}
		],
		"transitions": [{"from": "off", "to": "on", "label": "press"}]
	}`))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, f := range d.Figures() {
		fmt.Println(f.ID, f.Kind, f.Geometry)
	}
	// Output:
	// off initial 0,0 60x30
	// on state 100,0 60x30
}

func ExampleWrite() {
	d := figure.NewDocument()
	_, _ = d.Add(figure.Figure{ID: "idle", Geometry: figure.Rect(0, 0, 80, 40)})
	_ = diagram.Write(d, os.Stdout)
	// Output:
	// {
	//   "figures": [
	//     {
	//       "id": "idle",
	//       "kind": "state",
	//       "x": 0,
	//       "y": 0,
	//       "width": 80,
	//       "height": 40
	//     }
	//   ]
	// }
}
