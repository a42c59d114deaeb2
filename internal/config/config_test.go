package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
save_dir = /tmp/paintings
theme = dark
antialias = true
history_limit = 50

[canvas]
width = 800
height: 600
background = #102030

[pen]
color = "#FF000080"
width = 4

[notify]
save = true
copy = false
load = true
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.SaveDir != "/tmp/paintings" {
		t.Errorf("Expected save_dir '/tmp/paintings', got '%s'", cfg.SaveDir)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Expected theme 'dark', got '%s'", cfg.Theme)
	}
	if !cfg.Antialias {
		t.Error("Expected antialias to be true")
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("Expected history_limit 50, got %d", cfg.HistoryLimit)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("Unexpected canvas size %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.Background != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("Unexpected background %+v", cfg.Canvas.Background)
	}
	if cfg.Pen.Color != (color.RGBA{0xFF, 0, 0, 0x80}) {
		t.Errorf("Unexpected pen colour %+v", cfg.Pen.Color)
	}
	if cfg.Pen.Width != 4 {
		t.Errorf("Expected pen width 4, got %d", cfg.Pen.Width)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy || !cfg.Notify.Load {
		t.Errorf("Unexpected notify settings %+v", cfg.Notify)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing here\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	def := New()
	if cfg.Canvas != def.Canvas || cfg.Pen != def.Pen {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"antialias = maybe",
		"[canvas]\nwidth = wide",
		"[canvas]\nheight = 0",
		"[pen]\ncolor = red",
		"[notify]\nsave = 2",
	}
	for _, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `save_dir = ~/paint
antialias = false
history_limit = 3

[canvas]
width = 320
height = 200
background = #000000

[pen]
color = #00FF00
width = 6

[notify]
save = true
copy = true
load = false
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if *cfg != *cfg2 {
		t.Errorf("Config mismatch:\n%+v\n%+v", cfg, cfg2)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := New()
	if got := cfg.OutputPath("a.png"); got != "a.png" {
		t.Errorf("no save_dir: got %q", got)
	}
	cfg.SaveDir = "/srv/art"
	if got := cfg.OutputPath("a.png"); got != filepath.Join("/srv/art", "a.png") {
		t.Errorf("got %q", got)
	}
	if got := cfg.OutputPath("/abs/b.png"); got != "/abs/b.png" {
		t.Errorf("absolute path rewritten to %q", got)
	}
}

func TestLoaderOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("[pen]\nwidth = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("1.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q, want %q", got, path)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pen.Width != 9 {
		t.Errorf("pen width %d, want 9", cfg.Pen.Width)
	}
}
