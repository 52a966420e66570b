package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/figlayout/pkg/cache"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"graphml", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"json"}},
		{"svg", []string{"svg"}},
		{"SVG, dot,,graphml ", []string{"svg", "dot", "graphml"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateForLayout(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if opts.Algorithm != layout.DefaultAlgorithm || opts.CacheTTL != cache.TTLLayout || opts.Logger == nil {
		t.Errorf("defaults not applied: %+v", opts)
	}

	opts = Options{Algorithm: "circle"}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeUnknownAlgorithm) {
		t.Errorf("ValidateForLayout() error = %v, want %s", err, errors.ErrCodeUnknownAlgorithm)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	keyer := cache.NewDefaultKeyer()
	key := func(o Options) string {
		o.SetLayoutDefaults()
		return keyer.LayoutKey("doc", o.LayoutKeyOpts())
	}

	grid := Options{Algorithm: "grid"}
	gridForce := Options{Algorithm: "grid", Layout: layout.Config{Force: layout.ForceOptions{Seed: 3}}}
	gridCols := Options{Algorithm: "grid", Layout: layout.Config{Grid: layout.GridOptions{Columns: 3}}}

	if key(grid) != key(gridForce) {
		t.Error("parameters of other algorithms should not change the key")
	}
	if key(grid) == key(gridCols) {
		t.Error("grid parameters should change the key")
	}
	if key(grid) == key(Options{Algorithm: "grid", Selection: []string{"a"}}) {
		t.Error("selection should change the key")
	}
}

const machine = `{
  "figures": [
    {"id": "idle", "kind": "initial", "x": 3, "y": 9, "width": 80, "height": 40},
    {"id": "running", "x": 250, "y": 130, "width": 100, "height": 40},
    {"id": "done", "kind": "final", "x": 20, "y": 300, "width": 40, "height": 40}
  ],
  "transitions": [
    {"from": "idle", "to": "running"},
    {"from": "running", "to": "done"}
  ]
}`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine.json")
	if err := os.WriteFile(path, []byte(machine), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	mem := newMemCache()
	runner := NewRunner(mem, nil, nil)
	opts := Options{Input: writeInput(t), Algorithm: "layered", Formats: []string{"json", "dot"}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.ExportHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}
	if first.Stats.FigureCount != 3 || first.Stats.ConnectionCount != 2 || first.Stats.Moved == 0 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if len(first.Artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(first.Artifacts))
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.ExportHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	for _, f := range first.Document.Figures() {
		g, _ := second.Document.Figure(f.ID)
		if !g.Geometry.Equal(f.Geometry) {
			t.Errorf("%s: cached %v, computed %v", f.ID, g.Geometry, f.Geometry)
		}
	}
	if string(first.Artifacts["dot"]) != string(second.Artifacts["dot"]) {
		t.Error("cached export differs")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.ExportHit {
		t.Errorf("refresh run hit the cache: %+v", third.CacheInfo)
	}
}

func TestExecuteUndoable(t *testing.T) {
	ctx := context.Background()
	res, err := NewRunner(nil, nil, nil).Execute(ctx, Options{Input: writeInput(t)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := res.Editor.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	running, _ := res.Document.Figure("running")
	if running.Geometry.X != 250 || running.Geometry.Y != 130 {
		t.Errorf("undo restored running to %v", running.Geometry)
	}
}

func TestExecuteSelection(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Input:     writeInput(t),
		Selection: []string{"idle", "running"},
	})
	if err != nil {
		t.Fatal(err)
	}
	done, _ := res.Document.Figure("done")
	if done.Geometry.X != 20 || done.Geometry.Y != 300 {
		t.Errorf("unselected figure moved to %v", done.Geometry)
	}
}

func TestExecuteSkipLayout(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Input:      writeInput(t),
		SkipLayout: true,
		Formats:    []string{"graphml"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Edit != nil {
		t.Error("skipped layout produced an edit")
	}
	if len(res.Artifacts["graphml"]) == 0 {
		t.Error("missing graphml artifact")
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{name: "NoInput", opts: Options{}, wantCode: errors.ErrCodeInvalidInput},
		{name: "MissingFile", opts: Options{Input: "/nonexistent/machine.json"}, wantCode: errors.ErrCodeFileNotFound},
		{name: "BadFormat", opts: Options{Input: "x.json", Formats: []string{"eps"}}, wantCode: errors.ErrCodeInvalidInput},
		{name: "UnknownSelection", opts: Options{Selection: []string{"ghost"}}, wantCode: errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "UnknownSelection" {
				tt.opts.Input = writeInput(t)
			}
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Execute() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }
