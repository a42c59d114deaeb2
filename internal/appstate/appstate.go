package appstate

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	"github.com/example/shineypaint/internal/raster"
)

// Tool is the active drawing tool. The numeric value is persisted between
// sessions, so existing values must not be renumbered.
type Tool int

const (
	ToolFreehand Tool = iota
	ToolLine
	ToolRect
	ToolEllipse
	ToolStar
	ToolEraser
)

var toolNames = []string{"freehand", "line", "rect", "ellipse", "star", "eraser"}

var toolAliases = map[string]Tool{
	"pencil":    ToolFreehand,
	"pen":       ToolFreehand,
	"rectangle": ToolRect,
	"square":    ToolRect,
	"circle":    ToolEllipse,
	"oval":      ToolEllipse,
	"rubber":    ToolEraser,
}

// Tools lists every tool in tag order.
func Tools() []Tool {
	out := make([]Tool, len(toolNames))
	for i := range out {
		out[i] = Tool(i)
	}
	return out
}

func (t Tool) String() string {
	if t.Valid() {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool { return t >= 0 && int(t) < len(toolNames) }

// Tag is the integer stored for t in persisted settings.
func (t Tool) Tag() int { return int(t) }

// ToolFromTag converts a persisted tag back into a tool.
func ToolFromTag(tag int) (Tool, bool) {
	t := Tool(tag)
	return t, t.Valid()
}

// ParseTool resolves a tool name or alias, ignoring case.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, tn := range toolNames {
		if tn == n {
			return Tool(i), nil
		}
	}
	if t, ok := toolAliases[n]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// IsParametric reports whether the tool previews on an overlay and commits on
// release rather than painting as the pointer moves.
func (t Tool) IsParametric() bool {
	switch t {
	case ToolLine, ToolRect, ToolEllipse, ToolStar:
		return true
	}
	return false
}

// Shape is the raster shape drawn by a parametric tool.
func (t Tool) Shape() raster.Shape {
	switch t {
	case ToolRect:
		return raster.ShapeRect
	case ToolEllipse:
		return raster.ShapeEllipse
	case ToolStar:
		return raster.ShapeStar
	}
	return raster.ShapeLine
}

const (
	defaultColorIndex = 0
	defaultWidthIndex = 1
)

var (
	defaultBackground = color.RGBA{255, 255, 255, 255}
	defaultSize       = [2]int{640, 480}
)

// DefaultBackground is the canvas fill used when none is configured.
func DefaultBackground() color.RGBA { return defaultBackground }

// DefaultSize is the canvas size used when none is configured.
func DefaultSize() (w, h int) { return defaultSize[0], defaultSize[1] }

type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
		{0, 255, 255, 255},
		{255, 0, 255, 255},
		{128, 0, 0, 255},
		{0, 128, 0, 255},
		{0, 0, 128, 255},
		{128, 128, 0, 255},
		{0, 128, 128, 255},
		{128, 0, 128, 255},
		{192, 192, 192, 255},
		{128, 128, 128, 255},
	}
	paletteNames = []string{
		"Black", "White", "Red", "Lime", "Blue", "Yellow", "Cyan", "Magenta",
		"Maroon", "Green", "Navy", "Olive", "Teal", "Purple", "Silver", "Gray",
	}
)

var (
	widthsMu sync.RWMutex
	widths   = []int{1, 2, 4, 6, 8, 12}
)

// DefaultColorIndex returns the palette index of the initial pen colour.
func DefaultColorIndex() int { return defaultColorIndex }

// DefaultWidthIndex returns the index of the initial stroke width.
func DefaultWidthIndex() int { return defaultWidthIndex }

// DefaultColor is the initial pen colour.
func DefaultColor() color.RGBA { return paletteColorAt(defaultColorIndex) }

// DefaultWidth is the initial stroke width.
func DefaultWidth() int { return widthAt(defaultWidthIndex) }

// PaletteColors returns palette entries annotated with their display names.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	for i := range palette {
		out[i] = PaletteColor{Name: paletteNames[i], Color: palette[i]}
	}
	return out
}

// EnsurePaletteColor makes sure col is present in the palette and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing == col {
			if name != "" && paletteNames[idx] == "" {
				paletteNames[idx] = name
			}
			return idx
		}
	}
	if name == "" {
		name = fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	palette = append(palette, col)
	paletteNames = append(paletteNames, name)
	return len(palette) - 1
}

// PaletteIndex returns the index of col, or -1 when it is not in the palette.
func PaletteIndex(col color.RGBA) int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for idx, existing := range palette {
		if existing == col {
			return idx
		}
	}
	return -1
}

// WidthOptions returns a copy of the stroke width presets.
func WidthOptions() []int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// EnsureWidth makes sure width is included in the presets and returns its index.
func EnsureWidth(width int) int {
	if width < 1 {
		width = 1
	}
	widthsMu.Lock()
	defer widthsMu.Unlock()
	idx := sort.SearchInts(widths, width)
	if idx < len(widths) && widths[idx] == width {
		return idx
	}
	widths = append(widths, 0)
	copy(widths[idx+1:], widths[idx:])
	widths[idx] = width
	return idx
}

func paletteColorAt(idx int) color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if len(palette) == 0 {
		return color.RGBA{}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

func widthAt(idx int) int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	if len(widths) == 0 {
		return 1
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(widths) {
		idx = len(widths) - 1
	}
	return widths[idx]
}

// stepWidth returns the preset next to width in direction dir (+1 or -1).
func stepWidth(width, dir int) int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	if len(widths) == 0 {
		return width
	}
	idx := sort.SearchInts(widths, width)
	if dir > 0 {
		if idx < len(widths) && widths[idx] == width {
			idx++
		}
		if idx >= len(widths) {
			idx = len(widths) - 1
		}
		return widths[idx]
	}
	idx--
	if idx < 0 {
		idx = 0
	}
	return widths[idx]
}
