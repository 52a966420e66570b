package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figlayout/pkg/cache"
	"github.com/matzehuels/figlayout/pkg/diagram"
	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/editor"
	"github.com/matzehuels/figlayout/pkg/export"
	"github.com/matzehuels/figlayout/pkg/figure"
	"github.com/matzehuels/figlayout/pkg/layout"
	"github.com/matzehuels/figlayout/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := diagram.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result := &Result{Document: doc}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.FigureCount = doc.Len()
	result.Stats.ConnectionCount = len(doc.Connections())

	r.Logger.Info("loaded diagram",
		"figures", result.Stats.FigureCount,
		"transitions", result.Stats.ConnectionCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	if !opts.SkipLayout {
		layoutStart := time.Now()
		lr, err := r.LayoutWithCacheInfo(ctx, doc, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Edit = lr.Edit
		result.Editor = lr.Editor
		result.DocumentHash = lr.DocumentHash
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.Stats.Moved = lr.Edit.Len()
		result.CacheInfo.LayoutHit = lr.Hit

		r.Logger.Info("computed layout",
			"algorithm", opts.Algorithm,
			"moved", result.Stats.Moved,
			"cached", lr.Hit,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// LayoutResult is the outcome of the layout stage.
type LayoutResult struct {
	Edit         *edit.Edit
	Editor       *editor.Editor
	DocumentHash string
	Hit          bool
}

// LayoutWithCacheInfo lays out doc, replaying a cached result when one
// exists for the same document and options. The edit is recorded in a fresh
// editor so it can be undone.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *figure.Document, opts Options) (LayoutResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return LayoutResult{}, err
	}

	docData, err := diagram.Marshal(doc)
	if err != nil {
		return LayoutResult{}, fmt.Errorf("serialize document for cache key: %w", err)
	}
	docHash := cache.Hash(docData)
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())
	ed := editor.New(doc, editor.Options{Depth: 1, Logger: opts.Logger})
	ids := opts.selection()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeLayout)
			if pos, err := diagram.UnmarshalPositions(data); err == nil {
				e, err := ed.ApplyLayout(ctx, layout.NewFixed(opts.Algorithm, pos), ids...)
				if err == nil {
					return LayoutResult{Edit: e, Editor: ed, DocumentHash: docHash, Hit: true}, nil
				}
				r.Logger.Debug("cached layout rejected", "err", err)
			}
			// If replay fails, fall through to recompute
		} else {
			observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		}
	}

	l, err := layout.New(opts.Algorithm, doc, opts.Layout)
	if err != nil {
		return LayoutResult{}, err
	}
	e, err := ed.ApplyLayout(ctx, l, ids...)
	if err != nil {
		return LayoutResult{}, err
	}

	// Cache the result
	set := doc.Figures()
	if len(ids) > 0 {
		set, _ = doc.Select(ids...)
	}
	if data, err := diagram.MarshalPositions(layout.Positions(set)); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.CacheTTL); err != nil {
			r.Logger.Debug("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return LayoutResult{Edit: e, Editor: ed, DocumentHash: docHash}, nil
}

// ExportWithCacheInfo produces every requested format and reports whether
// all of them came from the cache.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, doc *figure.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}

	docData, err := diagram.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	layoutHash := cache.Hash(docData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
		allCached = false

		data, err := export.Export(ctx, doc, format)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return artifacts, allCached, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
