// Package observability exposes event hooks for layout calls, the undo
// history and the layout cache.
//
// Each category has an interface, a no-op implementation and a process-wide
// slot. Only the binary installs hooks; figlayout does so with LogHooks when
// run with --verbose. Emitting packages fetch the current hook per call:
//
//	observability.Layout().OnLayoutStart(ctx, "grid", len(set))
//	moved, err := commit(set)
//	observability.Layout().OnLayoutComplete(ctx, "grid", moved, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout invocations.
type LayoutHooks interface {
	// OnLayoutStart records a layout call over the given number of figures.
	OnLayoutStart(ctx context.Context, algorithm string, figures int)

	// OnLayoutComplete records the outcome. moved is the number of figures
	// whose geometry changed; it is zero on error.
	OnLayoutComplete(ctx context.Context, algorithm string, moved int, duration time.Duration, err error)
}

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from the undo history.
type HistoryHooks interface {
	// OnPush records an edit added to the history.
	OnPush(ctx context.Context, name string, depth int)

	// OnUndo and OnRedo record an undo or redo attempt and its outcome.
	OnUndo(ctx context.Context, name string, err error)
	OnRedo(ctx context.Context, name string, err error)

	// OnDrop records an edit removed because it can no longer be applied.
	OnDrop(ctx context.Context, name string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnPush(context.Context, string, int)   {}
func (NoopHistoryHooks) OnUndo(context.Context, string, error) {}
func (NoopHistoryHooks) OnRedo(context.Context, string, error) {}
func (NoopHistoryHooks) OnDrop(context.Context, string)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
	historyHooks HistoryHooks = NoopHistoryHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout calls.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetHistoryHooks registers custom history hooks.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	historyHooks = NoopHistoryHooks{}
	cacheHooks = NoopCacheHooks{}
}
