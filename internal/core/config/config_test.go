package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "burrow.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Root != "." {
		t.Errorf("root = %q", cfg.Root)
	}
	if cfg.Views.Hot.MinImports != 2 || cfg.Views.Hot.MinDepth != 1 || cfg.Views.Hot.Top != 20 {
		t.Errorf("hot defaults: %+v", cfg.Views.Hot)
	}
	if cfg.Views.Dead.Top != 50 {
		t.Errorf("dead defaults: %+v", cfg.Views.Dead)
	}
	if cfg.Views.Cold.MaxImports != 3 || cfg.Views.Cold.Top != 20 {
		t.Errorf("cold defaults: %+v", cfg.Views.Cold)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version = 1
root = "./src"

[exclude]
dirs = ["build"]

[views.hot]
min_imports = 5

[history]
enabled = true
path = "runs.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Root != "./src" {
		t.Errorf("root = %q", cfg.Root)
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != "build" {
		t.Errorf("exclude dirs: %v", cfg.Exclude.Dirs)
	}
	if cfg.Views.Hot.MinImports != 5 {
		t.Errorf("hot.min_imports = %d", cfg.Views.Hot.MinImports)
	}
	// Untouched sections still get defaults.
	if cfg.Views.Dead.Top != 50 {
		t.Errorf("dead.top = %d", cfg.Views.Dead.Top)
	}
	if !cfg.History.Enabled || cfg.History.Path != "runs.db" {
		t.Errorf("history: %+v", cfg.History)
	}
}

func TestLoad_ZeroThresholdCountsAsUnset(t *testing.T) {
	path := writeConfig(t, `
[views.hot]
min_imports = 0
min_depth = 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Explicit zeros fall back to the defaults; disabling a hot threshold
	// is a flag-level concern.
	if cfg.Views.Hot.MinImports != 2 || cfg.Views.Hot.MinDepth != 1 {
		t.Errorf("hot thresholds: %+v", cfg.Views.Hot)
	}
}

func TestLoad_RejectsBadVersion(t *testing.T) {
	path := writeConfig(t, "version = 9\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("expected version error, got %v", err)
	}
}

func TestLoad_RejectsBadPattern(t *testing.T) {
	path := writeConfig(t, "[exclude]\ndirs = [\"[\"]\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "exclude pattern") {
		t.Errorf("expected pattern error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nope/burrow.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}
