package appstate

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/google/uuid"

	"github.com/example/shineypaint/internal/history"
	"github.com/example/shineypaint/internal/raster"
	"github.com/example/shineypaint/internal/theme"
)

var (
	// ErrStroking is returned for operations that are refused while a stroke
	// is in progress.
	ErrStroking = errors.New("stroke in progress")
	// ErrLoadDeferred is returned when a load arrives mid-stroke. The image is
	// applied as soon as the stroke ends.
	ErrLoadDeferred = errors.New("load deferred until the stroke ends")
)

// AppState owns the canvas, its history and the tool state machine. All
// methods must be called from a single goroutine; background work is handed
// back through events.
type AppState struct {
	Input  string
	Output string

	surface  *raster.Surface
	history  *history.History
	renderer raster.Renderer
	tool     Tool
	pen      raster.Pen
	stroke   *stroke
	pending  *raster.Surface
	theme    *theme.Theme

	width, height int
	bg            color.RGBA
	initial       image.Image
	historyLimit  int

	settingsMu sync.Mutex
	settingsFn func(tool Tool, col color.RGBA, width int)
	actionFn   func(action, detail string)

	onClose   func()
	closeOnce sync.Once
}

// stroke lives from pointer-down to pointer-up. Parametric tools keep the
// canvas as it was at pointer-down in scratch and preview into overlay.
type stroke struct {
	tool    Tool
	anchor  image.Point
	last    image.Point
	scratch *raster.Surface
	overlay *raster.Surface
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSize sets the size of a blank canvas.
func WithSize(w, h int) Option { return func(a *AppState) { a.width, a.height = w, h } }

// WithBackground sets the canvas fill, which is also the eraser colour.
func WithBackground(c color.RGBA) Option { return func(a *AppState) { a.bg = c } }

// WithImage starts from a copy of img instead of a blank canvas.
func WithImage(img image.Image) Option { return func(a *AppState) { a.initial = img } }

// WithTool sets the initially selected tool.
func WithTool(t Tool) Option {
	return func(a *AppState) {
		if t.Valid() {
			a.tool = t
		}
	}
}

// WithColor sets the initial pen colour.
func WithColor(c color.RGBA) Option { return func(a *AppState) { a.pen.Color = c } }

// WithStrokeWidth sets the initial stroke width.
func WithStrokeWidth(w int) Option { return func(a *AppState) { a.pen.Width = w } }

// WithHistoryLimit caps the number of undo steps. Zero means unbounded.
func WithHistoryLimit(n int) Option { return func(a *AppState) { a.historyLimit = n } }

// WithAntialias switches between the crisp and the smooth stroke renderer.
func WithAntialias(on bool) Option {
	return func(a *AppState) {
		if on {
			a.renderer = raster.SmoothRenderer{}
		} else {
			a.renderer = raster.CrispRenderer{}
		}
	}
}

// WithTheme sets the colours of the window chrome.
func WithTheme(t *theme.Theme) Option {
	return func(a *AppState) {
		if t != nil {
			a.theme = t
		}
	}
}

// WithInput sets the file reloaded by the window's open shortcut.
func WithInput(path string) Option { return func(a *AppState) { a.Input = path } }

// WithOutput sets the file written by the window's save shortcut.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSettingsListener registers a callback for when tool or pen settings change.
func WithSettingsListener(fn func(tool Tool, col color.RGBA, width int)) Option {
	return func(a *AppState) { a.settingsFn = fn }
}

// WithActionListener registers a callback for completed window actions such
// as "save", "copy" and "load". detail is the path involved, if any.
func WithActionListener(fn func(action, detail string)) Option {
	return func(a *AppState) { a.actionFn = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	w, h := DefaultSize()
	a := &AppState{
		width:    w,
		height:   h,
		bg:       defaultBackground,
		renderer: raster.CrispRenderer{},
		theme:    theme.Default(),
		tool:     ToolFreehand,
		pen:      raster.Pen{Color: DefaultColor(), Width: DefaultWidth()},
	}
	for _, o := range opts {
		o(a)
	}
	if a.pen.Width < 1 {
		a.pen.Width = 1
	}
	if a.initial != nil {
		a.surface = raster.FromImage(a.initial, a.bg, raster.WithRenderer(a.renderer))
		a.initial = nil
	} else {
		a.surface = raster.New(a.width, a.height, a.bg, raster.WithRenderer(a.renderer))
	}
	a.history = history.New(a.historyLimit)
	return a
}

// SelectTool switches tools. It is ignored, returning false, while a stroke
// is in progress.
func (a *AppState) SelectTool(t Tool) bool {
	if a.stroke != nil || !t.Valid() {
		return false
	}
	a.tool = t
	a.notifySettings()
	return true
}

func (a *AppState) Tool() Tool { return a.tool }

// SetColor changes the pen colour. It applies to whatever is rendered next,
// including the rest of a stroke in progress.
func (a *AppState) SetColor(c color.RGBA) {
	a.pen.Color = c
	a.notifySettings()
}

func (a *AppState) Color() color.RGBA { return a.pen.Color }

// SetStrokeWidth changes the stroke width. Widths below one are raised to one.
func (a *AppState) SetStrokeWidth(w int) {
	if w < 1 {
		w = 1
	}
	a.pen.Width = w
	a.notifySettings()
}

func (a *AppState) StrokeWidth() int { return a.pen.Width }

// PointerDown starts a stroke at p. The canvas is recorded for undo before
// anything is drawn.
func (a *AppState) PointerDown(p image.Point) bool {
	if a.stroke != nil {
		return false
	}
	a.history.BeginEdit(a.surface)
	st := &stroke{tool: a.tool, anchor: p, last: p}
	if st.tool.IsParametric() {
		st.scratch = a.surface.Clone()
	}
	a.stroke = st
	return false
}

// PointerMove extends the stroke to p. Freehand and eraser paint straight
// onto the canvas; parametric tools redraw their preview.
func (a *AppState) PointerMove(p image.Point) bool {
	st := a.stroke
	if st == nil {
		return false
	}
	if st.tool.IsParametric() {
		a.renderOverlay(p)
		return true
	}
	a.surface.DrawSegment(st.last, p, a.penFor(st.tool))
	st.last = p
	return true
}

// PointerUp ends the stroke. Parametric tools commit their preview, drawn to
// the release point.
func (a *AppState) PointerUp(p image.Point) bool {
	st := a.stroke
	if st == nil {
		return false
	}
	repaint := false
	if st.tool.IsParametric() {
		if p != st.last {
			a.renderOverlay(p)
		}
		if st.overlay != nil {
			a.surface.CopyFrom(st.overlay)
			repaint = true
		}
	}
	a.stroke = nil
	if a.pending != nil {
		a.applyLoaded(a.pending)
		a.pending = nil
		repaint = true
	}
	return repaint
}

func (a *AppState) renderOverlay(p image.Point) {
	st := a.stroke
	if st.overlay == nil {
		st.overlay = st.scratch.Clone()
	} else {
		st.overlay.CopyFrom(st.scratch)
	}
	st.overlay.DrawShape(st.tool.Shape(), st.anchor, p, a.penFor(st.tool))
	st.last = p
}

func (a *AppState) penFor(t Tool) raster.Pen {
	pen := a.pen
	if t == ToolEraser {
		pen.Color = a.surface.Background()
	}
	return pen
}

// Stroking reports whether a pointer is currently held down.
func (a *AppState) Stroking() bool { return a.stroke != nil }

// Resize grows the canvas to at least w×h. It never shrinks and is not
// recorded in history.
func (a *AppState) Resize(w, h int) bool {
	grew := a.surface.Resize(w, h)
	if st := a.stroke; st != nil && st.scratch != nil {
		st.scratch.Resize(w, h)
		if st.overlay != nil {
			st.overlay.Resize(w, h)
		}
	}
	return grew
}

// Undo restores the canvas as it was before the most recent edit.
func (a *AppState) Undo() bool {
	if a.stroke != nil {
		return false
	}
	snap, ok := a.history.Undo(a.surface)
	if !ok {
		return false
	}
	a.surface.Restore(snap)
	return true
}

// Redo reapplies the most recently undone edit.
func (a *AppState) Redo() bool {
	if a.stroke != nil {
		return false
	}
	snap, ok := a.history.Redo(a.surface)
	if !ok {
		return false
	}
	a.surface.Restore(snap)
	return true
}

// Clear fills the canvas with the background colour. It can be undone.
func (a *AppState) Clear() bool {
	if a.stroke != nil {
		return false
	}
	a.history.BeginEdit(a.surface)
	a.surface.Fill(a.surface.Background())
	return true
}

func (a *AppState) CanUndo() bool { return a.history.CanUndo() }
func (a *AppState) CanRedo() bool { return a.history.CanRedo() }

// HistoryDepth returns the sizes of the undo and redo stacks.
func (a *AppState) HistoryDepth() (undo, redo int) {
	return a.history.UndoLen(), a.history.RedoLen()
}

// LastSnapshotID identifies the snapshot the next undo would restore.
func (a *AppState) LastSnapshotID() (uuid.UUID, bool) {
	snap, ok := a.history.PeekUndo()
	if !ok {
		return uuid.Nil, false
	}
	return snap.ID(), true
}

// Size returns the canvas dimensions.
func (a *AppState) Size() image.Point {
	return image.Pt(a.surface.Width(), a.surface.Height())
}

func (a *AppState) Background() color.RGBA { return a.surface.Background() }

// DisplaySurface returns a copy of what should be on screen: the preview while
// a parametric tool is dragging, otherwise the canvas.
func (a *AppState) DisplaySurface() *raster.Snapshot {
	return a.display().Snapshot()
}

// RenderTo copies the display surface onto dst at the origin.
func (a *AppState) RenderTo(dst draw.Image) {
	a.display().DrawTo(dst, image.Point{})
}

func (a *AppState) display() *raster.Surface {
	if st := a.stroke; st != nil && st.overlay != nil {
		return st.overlay
	}
	return a.surface
}

func (a *AppState) notifySettings() {
	a.settingsMu.Lock()
	fn := a.settingsFn
	a.settingsMu.Unlock()
	if fn != nil {
		fn(a.tool, a.pen.Color, a.pen.Width)
	}
}

func (a *AppState) notifyAction(action, detail string) {
	a.settingsMu.Lock()
	fn := a.actionFn
	a.settingsMu.Unlock()
	if fn != nil {
		fn(action, detail)
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}
