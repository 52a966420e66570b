package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event at debug level on a charmbracelet logger.
// It implements LayoutHooks, HistoryHooks and CacheHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks writing to logger, or to log.Default when nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetLayoutHooks(h)
	SetHistoryHooks(h)
	SetCacheHooks(h)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, algorithm string, figures int) {
	h.Logger.Debug("layout start", "algorithm", algorithm, "figures", figures)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, algorithm string, moved int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "algorithm", algorithm, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout done", "algorithm", algorithm, "moved", moved, "duration", d)
}

func (h *LogHooks) OnPush(_ context.Context, name string, depth int) {
	h.Logger.Debug("history push", "edit", name, "depth", depth)
}

func (h *LogHooks) OnUndo(_ context.Context, name string, err error) {
	h.Logger.Debug("history undo", "edit", name, "err", err)
}

func (h *LogHooks) OnRedo(_ context.Context, name string, err error) {
	h.Logger.Debug("history redo", "edit", name, "err", err)
}

func (h *LogHooks) OnDrop(_ context.Context, name string) {
	h.Logger.Debug("history drop", "edit", name)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ LayoutHooks  = (*LogHooks)(nil)
	_ HistoryHooks = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
)
