package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/figlayout/pkg/figure"
)

const graphMLNamespace = "http://graphml.graphdrawing.org/xmlns"

type graphML struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphMLKey `xml:"key"`
	Graph   graphMLGraph `xml:"graph"`
}

type graphMLKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphMLGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphMLNode `xml:"node"`
	Edges       []graphMLEdge `xml:"edge"`
}

type graphMLNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphMLData `xml:"data"`
}

type graphMLEdge struct {
	ID     string        `xml:"id,attr"`
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphMLData `xml:"data,omitempty"`
}

type graphMLData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

var graphMLKeys = []graphMLKey{
	{ID: "label", For: "node", Name: "label", Type: "string"},
	{ID: "kind", For: "node", Name: "kind", Type: "string"},
	{ID: "x", For: "node", Name: "x", Type: "double"},
	{ID: "y", For: "node", Name: "y", Type: "double"},
	{ID: "width", For: "node", Name: "width", Type: "double"},
	{ID: "height", For: "node", Name: "height", Type: "double"},
	{ID: "locked", For: "node", Name: "locked", Type: "boolean"},
	{ID: "elabel", For: "edge", Name: "label", Type: "string"},
}

// GraphML encodes the document as GraphML with geometry stored as node data.
func GraphML(d *figure.Document) ([]byte, error) {
	doc := graphML{
		XMLNS: graphMLNamespace,
		Keys:  graphMLKeys,
		Graph: graphMLGraph{ID: "G", EdgeDefault: "directed"},
	}
	for _, f := range d.Figures() {
		g := f.Geometry
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphMLNode{
			ID: string(f.ID),
			Data: []graphMLData{
				{Key: "label", Value: f.DisplayLabel()},
				{Key: "kind", Value: string(f.Kind)},
				{Key: "x", Value: fmtFloat(g.X)},
				{Key: "y", Value: fmtFloat(g.Y)},
				{Key: "width", Value: fmtFloat(g.Width)},
				{Key: "height", Value: fmtFloat(g.Height)},
				{Key: "locked", Value: strconv.FormatBool(f.Locked)},
			},
		})
	}
	for i, c := range d.Connections() {
		e := graphMLEdge{ID: fmt.Sprintf("e%d", i), Source: string(c.From), Target: string(c.To)}
		if c.Label != "" {
			e.Data = []graphMLData{{Key: "elabel", Value: c.Label}}
		}
		doc.Graph.Edges = append(doc.Graph.Edges, e)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode graphml: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
