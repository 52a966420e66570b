package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/figlayout/pkg/figure"
)

// pointsPerInch converts figure units (points) to Graphviz sizes (inches).
const pointsPerInch = 72.0

// ToDOT converts a document to Graphviz DOT format. Each figure is pinned
// at its center with its exact size; Graphviz y grows upwards, so y is
// negated to keep the drawing upright.
func ToDOT(d *figure.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=12];\n")
	buf.WriteString("\n")

	for _, f := range d.Figures() {
		fmt.Fprintf(&buf, "  %q [%s];\n", f.ID, strings.Join(fmtAttrs(f), ", "))
	}

	buf.WriteString("\n")
	for _, c := range d.Connections() {
		if c.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", c.From, c.To, c.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.From, c.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(f *figure.Figure) []string {
	c := f.Geometry.Center()
	attrs := []string{
		fmt.Sprintf("label=%q", f.DisplayLabel()),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(c.X), fmtFloat(-c.Y)),
		fmt.Sprintf("width=%s", fmtFloat(f.Geometry.Width/pointsPerInch)),
		fmt.Sprintf("height=%s", fmtFloat(f.Geometry.Height/pointsPerInch)),
	}
	switch f.Kind {
	case figure.KindInitial:
		attrs = append(attrs, "penwidth=2")
	case figure.KindFinal:
		attrs = append(attrs, "peripheries=2")
	case figure.KindNote:
		attrs = append(attrs, "shape=note", "style=filled", "fillcolor=lightyellow")
	}
	if f.Locked {
		attrs = append(attrs, "color=grey40")
	}
	return attrs
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine,
// which honours pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the SVG scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
