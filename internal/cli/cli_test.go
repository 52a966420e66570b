package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figlayout/pkg/cache"
	"github.com/matzehuels/figlayout/pkg/config"
	"github.com/matzehuels/figlayout/pkg/layout"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"layout", "export", "edit", "cache", "config", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q (have %v)", want, names)
		}
	}
}

func TestLayoutFlagsOverrideConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Algorithm = layout.AlgorithmForce
	c.Config.Layout.Grid.Columns = 5
	c.Config.Layout.Force.Seed = 7

	var flags layoutFlags
	cmd := &cobra.Command{Use: "test"}
	addLayoutFlags(cmd, &flags)
	if err := cmd.ParseFlags([]string{"--algorithm", "grid", "--gap-x", "10", "--select", "a,b"}); err != nil {
		t.Fatal(err)
	}

	opts := c.pipelineOptions()
	flags.apply(cmd, &opts)

	if opts.Algorithm != layout.AlgorithmGrid {
		t.Errorf("Algorithm = %q, want grid", opts.Algorithm)
	}
	if opts.Layout.Grid.GapX != 10 {
		t.Errorf("GapX = %v, want 10", opts.Layout.Grid.GapX)
	}
	if opts.Layout.Grid.Columns != 5 {
		t.Errorf("Columns = %d, want config value 5", opts.Layout.Grid.Columns)
	}
	if opts.Layout.Force.Seed != 7 {
		t.Errorf("Seed = %d, want config value 7", opts.Layout.Force.Seed)
	}
	if !slices.Equal(opts.Selection, []string{"a", "b"}) {
		t.Errorf("Selection = %v", opts.Selection)
	}
}

func TestLoadConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "algorithm = \"layered\"\n\n[history]\ndepth = 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if c.Config.Algorithm != layout.AlgorithmLayered || c.Config.History.Depth != 3 {
		t.Errorf("loaded %+v", c.Config)
	}

	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	if err := c.loadConfig(); err == nil {
		t.Error("explicit missing config should fail")
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Cache.Dir = t.TempDir()

	ch, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := ch.(*cache.FileCache); !ok || fc.Dir() != c.Config.Cache.Dir {
		t.Errorf("file backend = %T", ch)
	}

	ch, _ = c.newCache(ctx, true)
	if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("--no-cache backend = %T", ch)
	}

	c.Config.Cache.Backend = config.BackendNone
	ch, _ = c.newCache(ctx, false)
	if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("none backend = %T", ch)
	}
	if got := c.cacheLocation(); got != "none" {
		t.Errorf("cacheLocation() = %q", got)
	}

	c.Config.Cache.Backend = config.BackendRedis
	c.Config.Cache.Redis.Addr = "127.0.0.1:1"
	if _, err := c.newCache(ctx, false); err == nil {
		t.Error("unreachable redis should fail")
	}
}

func TestExportPath(t *testing.T) {
	tests := []struct {
		base, format, want string
	}{
		{"machine.json", "svg", "machine.svg"},
		{"machine.json", "json", "machine.export.json"},
		{"out/machine", "graphml", "out/machine.graphml"},
		{"out/machine", "dot", "out/machine.dot"},
	}
	for _, tt := range tests {
		if got := exportPath(tt.base, tt.format); got != tt.want {
			t.Errorf("exportPath(%q, %q) = %q, want %q", tt.base, tt.format, got, tt.want)
		}
	}
}

func TestNewKeyerNamespace(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	plain := c.newKeyer().LayoutKey("doc", cache.LayoutKeyOpts{Algorithm: "grid"})

	c.Config.Cache.Namespace = "traffic-light:"
	scoped := c.newKeyer().LayoutKey("doc", cache.LayoutKeyOpts{Algorithm: "grid"})
	if scoped != "traffic-light:"+plain {
		t.Errorf("scoped key = %q, want prefix on %q", scoped, plain)
	}
}

func TestCompletionCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})

			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if out.Len() == 0 {
				t.Errorf("completion %s wrote nothing", shell)
			}
		})
	}
}
