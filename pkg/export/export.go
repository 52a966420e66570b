package export

import (
	"context"

	"github.com/matzehuels/figlayout/pkg/diagram"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// Format constants for export formats.
const (
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatGraphML = "graphml"
	FormatJSON    = "json"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatDOT:     true,
	FormatSVG:     true,
	FormatGraphML: true,
	FormatJSON:    true,
}

// Export renders d in the named format.
func Export(ctx context.Context, d *figure.Document, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(ToDOT(d)), nil
	case FormatSVG:
		return RenderSVG(ctx, ToDOT(d))
	case FormatGraphML:
		return GraphML(d)
	case FormatJSON:
		return diagram.Marshal(d)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported export format %q (want dot, svg, graphml or json)", format)
	}
}
