// Package editor invokes layout algorithms on a document and records the
// resulting edits in an undo history.
//
// An [Editor] is the single entry point through which figures are laid out,
// undone and redone. It serialises every request, so no two layout calls
// ever overlap, and it reports each step to the observability hooks.
//
//	ed := editor.New(doc, editor.Options{Logger: logger})
//	l, _ := layout.New("layered", doc, layout.Config{})
//	if _, err := ed.ApplyLayout(ctx, l); err != nil {
//	    return err
//	}
//	_, err := ed.Undo(ctx)
package editor

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figlayout/pkg/edit"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
	"github.com/matzehuels/figlayout/pkg/history"
	"github.com/matzehuels/figlayout/pkg/layout"
	"github.com/matzehuels/figlayout/pkg/observability"
)

// Options configures an Editor.
type Options struct {
	// Depth bounds the undo history. Zero selects history.DefaultDepth.
	Depth int

	// DropStale removes an edit from the history when Undo or Redo fails
	// because one of its figures was deleted. Without it the edit stays and
	// blocks further undos until the caller intervenes.
	DropStale bool

	// Logger receives progress messages. Nil uses log.Default.
	Logger *log.Logger
}

// Editor owns a document and its undo history.
type Editor struct {
	mu        sync.Mutex
	doc       *figure.Document
	history   *history.History
	dropStale bool
	logger    *log.Logger
}

// New creates an editor for doc.
func New(doc *figure.Document, opts Options) *Editor {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Editor{
		doc:       doc,
		history:   history.New(opts.Depth),
		dropStale: opts.DropStale,
		logger:    opts.Logger,
	}
}

// ApplyLayout runs l over the figures named by ids, or over every figure
// when ids is empty, and records the edit. Noop edits are returned but not
// recorded. On error no figure has moved and the history is unchanged.
func (e *Editor) ApplyLayout(ctx context.Context, l layout.FigureLayout, ids ...figure.ID) (*edit.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set := e.doc.Figures()
	if len(ids) > 0 {
		var err error
		if set, err = e.doc.Select(ids...); err != nil {
			return nil, err
		}
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, l.Name(), len(set))
	start := time.Now()
	ed, err := l.Layout(set)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnLayoutComplete(ctx, l.Name(), 0, elapsed, err)
		e.logger.Warn("layout failed", "algorithm", l.Name(), "err", errors.UserMessage(err))
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, l.Name(), ed.Len(), elapsed, nil)

	if e.history.Push(ed) {
		observability.History().OnPush(ctx, ed.Name(), e.history.Len())
	}
	e.logger.Info("applied layout",
		"algorithm", l.Name(),
		"figures", len(set),
		"moved", ed.Len(),
		"kind", ed.Kind(),
		"duration", elapsed)
	return ed, nil
}

// Undo reverts the most recent layout.
func (e *Editor) Undo(ctx context.Context) (*edit.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ed, err := e.history.Undo(e.doc)
	observability.History().OnUndo(ctx, editName(ed), err)
	if err != nil {
		e.handleFailure(ctx, "undo", ed, err)
		return ed, err
	}
	e.logger.Info("undid layout", "algorithm", ed.Name(), "restored", ed.Len())
	return ed, nil
}

// Redo reapplies the most recently undone layout.
func (e *Editor) Redo(ctx context.Context) (*edit.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ed, err := e.history.Redo(e.doc)
	observability.History().OnRedo(ctx, editName(ed), err)
	if err != nil {
		e.handleFailure(ctx, "redo", ed, err)
		return ed, err
	}
	e.logger.Info("redid layout", "algorithm", ed.Name(), "moved", ed.Len())
	return ed, nil
}

// RemoveFigure deletes a figure from the document. Edits that captured it
// become stale.
func (e *Editor) RemoveFigure(id figure.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.doc.Remove(id); err != nil {
		return err
	}
	e.logger.Debug("removed figure", "id", id)
	return nil
}

// CanUndo reports whether an edit is available to undo.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo reports whether an edit is available to redo.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// HistoryStats returns the number of applied edits and the total recorded.
func (e *Editor) HistoryStats() (applied, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Stats()
}

// Document returns the edited document. Callers must not mutate it while
// another goroutine uses the editor.
func (e *Editor) Document() *figure.Document { return e.doc }

func (e *Editor) handleFailure(ctx context.Context, op string, ed *edit.Edit, err error) {
	if ed == nil {
		e.logger.Debug(op+" unavailable", "err", errors.UserMessage(err))
		return
	}
	if errors.Is(err, errors.ErrCodeStaleReference) && e.dropStale {
		e.history.Drop(ed)
		observability.History().OnDrop(ctx, ed.Name())
		e.logger.Warn(op+" dropped stale edit", "algorithm", ed.Name(), "err", errors.UserMessage(err))
		return
	}
	e.logger.Warn(op+" failed", "algorithm", ed.Name(), "err", errors.UserMessage(err))
}

func editName(ed *edit.Edit) string {
	if ed == nil {
		return ""
	}
	return ed.Name()
}
