// Package cli implements the figlayout command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Settings
// come from the TOML config file (see package config); command-line flags
// override it.
//
// # Commands
//
//   - layout: Arrange a diagram with the grid, layered or force algorithm
//   - export: Write a diagram as DOT, SVG, GraphML or JSON
//   - edit: Interactive session with layout, undo and redo
//   - cache: Manage the layout and export cache
//   - config: Show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs layout, history and cache events.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Exported 2 format(s) (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
