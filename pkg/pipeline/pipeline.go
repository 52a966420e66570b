// Package pipeline provides the load → layout → export pipeline behind the
// figlayout CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a JSON diagram into a figure document
//  2. Layout: Run a layout algorithm, or replay a cached result, through the
//     editor so the move is recorded as an undoable edit
//  3. Export: Produce output formats (JSON, DOT, SVG, GraphML)
//
// Layout results are cached by document hash and algorithm options; exports
// are cached by the hash of the laid-out document. A cached layout is applied
// with the same all-or-nothing commit as a live one.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "machine.json",
//	    Algorithm: "layered",
//	    Formats:   []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figlayout/pkg/cache"
	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/editor"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/export"
	"github.com/matzehuels/figlayout/pkg/figure"
	"github.com/matzehuels/figlayout/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultFormat is the export format used when none is requested.
const DefaultFormat = export.FormatJSON

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"`

	// Layout options
	Algorithm  string        `json:"algorithm,omitempty"`
	Layout     layout.Config `json:"layout"`
	Selection  []string      `json:"selection,omitempty"` // figure IDs; empty means all
	SkipLayout bool          `json:"skip_layout,omitempty"`

	// Export options
	Formats []string `json:"formats,omitempty"`

	// Cache options
	Refresh  bool          `json:"refresh,omitempty"` // ignore cached layouts and exports
	CacheTTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the laid-out document.
	Document *figure.Document

	// DocumentHash is the content hash of the document before layout.
	DocumentHash string

	// Edit records the layout; nil when the layout stage was skipped.
	Edit *edit.Edit

	// Editor holds the edit in its history, so callers may undo it.
	Editor *editor.Editor

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FigureCount     int
	ConnectionCount int
	Moved           int
	LoadTime        time.Duration
	LayoutTime      time.Duration
	ExportTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout was replayed from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !export.ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, dot, svg, graphml)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, defaulting to JSON.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = layout.DefaultAlgorithm
	}
	o.Algorithm = strings.ToLower(strings.TrimSpace(o.Algorithm))
	if o.CacheTTL == 0 {
		o.CacheTTL = cache.TTLLayout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if !layout.IsValid(o.Algorithm) {
		return errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm %q (available: %s)",
			o.Algorithm, strings.Join(layout.Names(), ", "))
	}
	return nil
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for exporting.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input diagram is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForExport()
}

// LayoutKeyOpts returns cache key options for layout computation. Only the
// parameters of the selected algorithm are part of the key.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	var params any
	switch o.Algorithm {
	case layout.AlgorithmGrid:
		params = o.Layout.Grid
	case layout.AlgorithmLayered:
		params = o.Layout.Layered
	case layout.AlgorithmForce:
		params = o.Layout.Force
	}
	return cache.LayoutKeyOpts{
		Algorithm: o.Algorithm,
		Options:   params,
		Selection: o.Selection,
	}
}

// ArtifactKeyOpts returns cache key options for an export format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// selection converts the configured figure IDs.
func (o *Options) selection() []figure.ID {
	ids := make([]figure.ID, len(o.Selection))
	for i, s := range o.Selection {
		ids[i] = figure.ID(s)
	}
	return ids
}
