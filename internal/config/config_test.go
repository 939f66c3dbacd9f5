package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	cfg := Default()
	if cfg.Editor.TabStop != 8 {
		t.Fatalf("tab stop = %d, want 8", cfg.Editor.TabStop)
	}
	if cfg.Editor.IndentWidth != 4 {
		t.Fatalf("indent width = %d, want 4", cfg.Editor.IndentWidth)
	}
	if cfg.Editor.WrapColumn != 80 {
		t.Fatalf("wrap column = %d, want 80", cfg.Editor.WrapColumn)
	}
	if !cfg.Editor.CenterScroll {
		t.Fatalf("center scroll off by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUILL_CONFIG_HOME", dir)
	content := "[editor]\nwrap-column = 100\nsoft-wrap = true\ntheme = \"solar\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.WrapColumn != 100 {
		t.Fatalf("wrap column = %d, want 100", cfg.Editor.WrapColumn)
	}
	if !cfg.Editor.SoftWrap {
		t.Fatalf("soft wrap = false, want true")
	}
	if cfg.Editor.Theme != "solar" {
		t.Fatalf("theme = %q, want solar", cfg.Editor.Theme)
	}
	// Untouched keys keep defaults.
	if cfg.Editor.TabStop != 8 {
		t.Fatalf("tab stop = %d, want 8", cfg.Editor.TabStop)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("QUILL_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.TabStop != 8 {
		t.Fatalf("missing file should yield defaults")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("QUILL_CONFIG_HOME", t.TempDir())
	cfg := Default()
	cfg.Editor.Theme = "ink"
	cfg.Editor.LineNumbers = false
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Editor.Theme != "ink" {
		t.Fatalf("theme = %q, want ink", got.Editor.Theme)
	}
	if got.Editor.LineNumbers {
		t.Fatalf("line numbers = true, want false")
	}
}
