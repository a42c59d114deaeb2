package appstate

import (
	"image/color"
	"testing"

	"github.com/example/shineypaint/internal/raster"
)

func TestParseTool(t *testing.T) {
	for _, tool := range Tools() {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Fatalf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	aliases := map[string]Tool{"Pencil": ToolFreehand, "SQUARE": ToolRect, "circle": ToolEllipse, " rubber ": ToolEraser}
	for name, want := range aliases {
		got, err := ParseTool(name)
		if err != nil || got != want {
			t.Errorf("ParseTool(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseTool("spray"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestToolTagsAreStable(t *testing.T) {
	want := map[Tool]int{ToolFreehand: 0, ToolLine: 1, ToolRect: 2, ToolEllipse: 3, ToolStar: 4, ToolEraser: 5}
	for tool, tag := range want {
		if tool.Tag() != tag {
			t.Errorf("%s tag %d, want %d", tool, tool.Tag(), tag)
		}
		back, ok := ToolFromTag(tag)
		if !ok || back != tool {
			t.Errorf("ToolFromTag(%d) = %v, %v", tag, back, ok)
		}
	}
	if _, ok := ToolFromTag(42); ok {
		t.Error("unknown tag accepted")
	}
}

func TestToolShapes(t *testing.T) {
	cases := map[Tool]raster.Shape{ToolLine: raster.ShapeLine, ToolRect: raster.ShapeRect, ToolEllipse: raster.ShapeEllipse, ToolStar: raster.ShapeStar}
	for tool, shape := range cases {
		if !tool.IsParametric() {
			t.Errorf("%s should be parametric", tool)
		}
		if tool.Shape() != shape {
			t.Errorf("%s shape %s, want %s", tool, tool.Shape(), shape)
		}
	}
	if ToolFreehand.IsParametric() || ToolEraser.IsParametric() {
		t.Error("freehand and eraser paint directly")
	}
}

func TestEnsurePaletteColor(t *testing.T) {
	col := color.RGBA{1, 2, 3, 255}
	idx := EnsurePaletteColor(col, "")
	if PaletteColors()[idx].Name != "#010203" {
		t.Fatalf("unexpected name %q", PaletteColors()[idx].Name)
	}
	if again := EnsurePaletteColor(col, "other"); again != idx {
		t.Fatalf("duplicate entry %d != %d", again, idx)
	}
	if PaletteIndex(col) != idx {
		t.Fatalf("PaletteIndex mismatch")
	}
	if PaletteIndex(color.RGBA{9, 9, 9, 9}) != -1 {
		t.Fatalf("missing colour found")
	}
}

func TestWidthPresets(t *testing.T) {
	idx := EnsureWidth(5)
	opts := WidthOptions()
	if opts[idx] != 5 {
		t.Fatalf("width 5 not at %d in %v", idx, opts)
	}
	for i := 1; i < len(opts); i++ {
		if opts[i-1] >= opts[i] {
			t.Fatalf("widths not sorted: %v", opts)
		}
	}
	if got := stepWidth(4, 1); got != 5 {
		t.Errorf("stepWidth(4, 1) = %d", got)
	}
	if got := stepWidth(5, -1); got != 4 {
		t.Errorf("stepWidth(5, -1) = %d", got)
	}
	if got := stepWidth(1, -1); got != 1 {
		t.Errorf("stepWidth(1, -1) = %d", got)
	}
	last := opts[len(opts)-1]
	if got := stepWidth(last, 1); got != last {
		t.Errorf("stepWidth(max, 1) = %d", got)
	}
	if got := stepWidth(3, 1); got != 4 {
		t.Errorf("stepWidth(3, 1) = %d", got)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"red":       {255, 0, 0, 255},
		"Navy":      {0, 0, 128, 255},
		"#10203a":   {0x10, 0x20, 0x3a, 255},
		"#10203A80": {0x10, 0x20, 0x3a, 0x80},
		" white ":   {255, 255, 255, 255},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseColor(%q) = %v, want %v", in, got, want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "notacolor"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) expected error", bad)
		}
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(color.RGBA{1, 2, 3, 255}); got != "#010203" {
		t.Fatalf("FormatColor opaque = %q", got)
	}
	if got := FormatColor(color.RGBA{1, 2, 3, 4}); got != "#01020304" {
		t.Fatalf("FormatColor translucent = %q", got)
	}
}
