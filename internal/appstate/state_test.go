package appstate

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shineypaint/internal/imagefile"
	"github.com/example/shineypaint/internal/raster"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func newTestState(w, h int, opts ...Option) *AppState {
	base := []Option{WithSize(w, h), WithBackground(white), WithColor(black), WithStrokeWidth(1)}
	return New(append(base, opts...)...)
}

func blank(w, h int) *raster.Snapshot { return raster.New(w, h, white).Snapshot() }

func TestFreehandStroke(t *testing.T) {
	a := newTestState(10, 10)
	a.PointerDown(image.Pt(5, 5))
	assert.True(t, a.PointerMove(image.Pt(6, 6)))
	assert.True(t, a.PointerMove(image.Pt(7, 7)))
	a.PointerUp(image.Pt(7, 7))

	live := a.DisplaySurface()
	for _, p := range []image.Point{{5, 5}, {6, 6}, {7, 7}} {
		assert.Equal(t, black, live.RGBAAt(p.X, p.Y), "pixel %v", p)
	}
	assert.Equal(t, white, live.RGBAAt(2, 2))
	undo, redo := a.HistoryDepth()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 0, redo)

	require.True(t, a.Undo())
	assert.True(t, a.DisplaySurface().Equal(blank(10, 10)))
	require.True(t, a.Redo())
	assert.True(t, a.DisplaySurface().Equal(live))
}

func TestRectanglePreviewAndCommit(t *testing.T) {
	a := newTestState(20, 20)
	require.True(t, a.SelectTool(ToolRect))
	a.PointerDown(image.Pt(2, 2))
	a.PointerMove(image.Pt(8, 8))
	a.PointerMove(image.Pt(8, 5))

	preview := a.DisplaySurface()
	assert.Equal(t, black, preview.RGBAAt(8, 5), "preview shows the current corner")
	assert.Equal(t, white, preview.RGBAAt(2, 8), "earlier previews are discarded")
	assert.Equal(t, white, preview.RGBAAt(5, 8))

	assert.True(t, a.surface.Snapshot().Equal(blank(20, 20)), "live canvas untouched while previewing")

	assert.True(t, a.PointerUp(image.Pt(8, 5)))
	live := a.DisplaySurface()
	for _, p := range []image.Point{{2, 2}, {8, 2}, {8, 5}, {2, 5}} {
		assert.Equal(t, black, live.RGBAAt(p.X, p.Y), "corner %v", p)
	}
	assert.Equal(t, white, live.RGBAAt(2, 8))
	undo, _ := a.HistoryDepth()
	assert.Equal(t, 1, undo)

	require.True(t, a.Undo())
	assert.True(t, a.DisplaySurface().Equal(blank(20, 20)))
}

func TestParametricCommitsReleasePoint(t *testing.T) {
	a := newTestState(20, 20, WithTool(ToolLine))
	a.PointerDown(image.Pt(1, 1))
	a.PointerMove(image.Pt(10, 1))
	a.PointerUp(image.Pt(1, 10))

	live := a.DisplaySurface()
	assert.Equal(t, black, live.RGBAAt(1, 10))
	assert.Equal(t, white, live.RGBAAt(10, 1))
}

func TestClickWithoutDragLeavesCanvas(t *testing.T) {
	a := newTestState(10, 10, WithTool(ToolEllipse))
	a.PointerDown(image.Pt(4, 4))
	assert.False(t, a.PointerUp(image.Pt(4, 4)))
	assert.True(t, a.DisplaySurface().Equal(blank(10, 10)))
}

func TestEraserPaintsBackground(t *testing.T) {
	a := newTestState(10, 10, WithColor(red))
	a.PointerDown(image.Pt(0, 5))
	a.PointerMove(image.Pt(9, 5))
	a.PointerUp(image.Pt(9, 5))
	require.Equal(t, red, a.DisplaySurface().RGBAAt(4, 5))

	require.True(t, a.SelectTool(ToolEraser))
	a.PointerDown(image.Pt(0, 5))
	a.PointerMove(image.Pt(9, 5))
	a.PointerUp(image.Pt(9, 5))

	assert.True(t, a.DisplaySurface().Equal(blank(10, 10)))
	assert.Equal(t, red, a.Color(), "the pen colour is not changed by erasing")
}

func TestToolSwitchIgnoredWhileStroking(t *testing.T) {
	a := newTestState(10, 10)
	a.PointerDown(image.Pt(1, 1))
	assert.False(t, a.SelectTool(ToolStar))
	_, err := a.Dispatch(SelectTool{Tool: ToolStar})
	assert.ErrorIs(t, err, ErrStroking)
	assert.Equal(t, ToolFreehand, a.Tool())

	a.PointerUp(image.Pt(1, 1))
	assert.True(t, a.SelectTool(ToolStar))
	assert.Equal(t, ToolStar, a.Tool())
}

func TestPointerEventsOutOfStateAreIgnored(t *testing.T) {
	a := newTestState(10, 10)
	assert.False(t, a.PointerMove(image.Pt(3, 3)))
	assert.False(t, a.PointerUp(image.Pt(3, 3)))
	assert.True(t, a.DisplaySurface().Equal(blank(10, 10)))
	assert.False(t, a.CanUndo())

	a.PointerDown(image.Pt(1, 1))
	a.PointerDown(image.Pt(2, 2))
	undo, _ := a.HistoryDepth()
	assert.Equal(t, 1, undo, "a second press does not start another edit")
}

func TestNewEditInvalidatesRedo(t *testing.T) {
	a := newTestState(10, 10)
	stroke := func(y int) {
		a.PointerDown(image.Pt(0, y))
		a.PointerMove(image.Pt(9, y))
		a.PointerUp(image.Pt(9, y))
	}
	stroke(1)
	stroke(2)
	require.True(t, a.Undo())
	require.True(t, a.CanRedo())

	stroke(3)
	assert.False(t, a.CanRedo())
	assert.False(t, a.Redo())
}

func TestEmptyHistoryIsNoOp(t *testing.T) {
	a := newTestState(10, 10)
	before := a.DisplaySurface()
	assert.False(t, a.Undo())
	assert.False(t, a.Redo())
	assert.True(t, a.DisplaySurface().Equal(before))
}

func TestClearIsUndoable(t *testing.T) {
	a := newTestState(10, 10)
	a.PointerDown(image.Pt(0, 0))
	a.PointerMove(image.Pt(9, 9))
	a.PointerUp(image.Pt(9, 9))
	drawn := a.DisplaySurface()

	require.True(t, a.Clear())
	assert.True(t, a.DisplaySurface().Equal(blank(10, 10)))
	require.True(t, a.Undo())
	assert.True(t, a.DisplaySurface().Equal(drawn))
}

func TestResizeDuringParametricStroke(t *testing.T) {
	a := newTestState(10, 10, WithTool(ToolLine))
	a.PointerDown(image.Pt(1, 1))
	a.PointerMove(image.Pt(5, 5))
	assert.True(t, a.Resize(30, 30))
	assert.False(t, a.Resize(5, 5))
	a.PointerMove(image.Pt(25, 25))
	a.PointerUp(image.Pt(25, 25))

	assert.Equal(t, image.Pt(30, 30), a.Size())
	assert.Equal(t, black, a.DisplaySurface().RGBAAt(25, 25))
	assert.Equal(t, white, a.DisplaySurface().RGBAAt(29, 0))
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(1, 1, red)
	path := filepath.Join(dir, "in.png")
	require.NoError(t, imagefile.Save(path, src))

	a := newTestState(10, 10)
	require.NoError(t, a.Load(path))
	assert.Equal(t, image.Pt(4, 3), a.Size())
	assert.Equal(t, red, a.DisplaySurface().RGBAAt(1, 1))

	out := filepath.Join(dir, "out.bmp")
	require.NoError(t, a.Save(out))
	img, err := imagefile.Load(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	require.True(t, a.Undo(), "load is undoable")
	assert.Equal(t, image.Pt(10, 10), a.Size())
}

func TestFailedLoadLeavesStateUntouched(t *testing.T) {
	a := newTestState(10, 10)
	a.PointerDown(image.Pt(0, 0))
	a.PointerMove(image.Pt(3, 3))
	a.PointerUp(image.Pt(3, 3))
	before := a.DisplaySurface()

	err := a.Load(filepath.Join(t.TempDir(), "missing.png"))
	var de *imagefile.DecodeError
	require.ErrorAs(t, err, &de)
	assert.True(t, a.DisplaySurface().Equal(before))
	undo, redo := a.HistoryDepth()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 0, redo)
}

func TestSaveToUnknownFormat(t *testing.T) {
	a := newTestState(4, 4)
	err := a.Save(filepath.Join(t.TempDir(), "out.xyz"))
	var ee *imagefile.EncodeError
	require.ErrorAs(t, err, &ee)
}

func TestRequestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "async.png")

	a := newTestState(6, 6, WithColor(red))
	a.PointerDown(image.Pt(0, 0))
	a.PointerMove(image.Pt(5, 0))
	a.PointerUp(image.Pt(5, 0))

	ev := <-a.RequestSave(ctx, path)
	saved, ok := ev.(Saved)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	_, err := a.Dispatch(ev)
	require.NoError(t, err)

	b := newTestState(3, 3)
	ev = <-b.RequestLoad(ctx, path)
	assert.Equal(t, image.Pt(3, 3), b.Size(), "nothing changes until the event is dispatched")
	repaint, err := b.Dispatch(ev)
	require.NoError(t, err)
	assert.True(t, repaint)
	assert.Equal(t, image.Pt(6, 6), b.Size())
	assert.Equal(t, red, b.DisplaySurface().RGBAAt(3, 0))
	assert.True(t, b.CanUndo())
}

func TestRequestLoadFailure(t *testing.T) {
	a := newTestState(3, 3)
	ev := <-a.RequestLoad(context.Background(), filepath.Join(t.TempDir(), "nope.gif"))
	_, err := a.Dispatch(ev)
	var de *imagefile.DecodeError
	assert.ErrorAs(t, err, &de)
	assert.False(t, a.CanUndo())
}

func TestLoadDuringStrokeIsDeferred(t *testing.T) {
	a := newTestState(10, 10)
	a.PointerDown(image.Pt(0, 0))
	a.PointerMove(image.Pt(2, 2))

	err := a.LoadImage(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	assert.ErrorIs(t, err, ErrLoadDeferred)
	assert.Equal(t, image.Pt(10, 10), a.Size())

	assert.True(t, a.PointerUp(image.Pt(2, 2)))
	assert.Equal(t, image.Pt(3, 3), a.Size())
	undo, _ := a.HistoryDepth()
	assert.Equal(t, 2, undo)
}

func TestDispatchDrivesTheEngine(t *testing.T) {
	a := newTestState(20, 20)
	events := []Event{
		SelectTool{Tool: ToolStar},
		SetColor{Color: red},
		SetStrokeWidth{Width: 1},
		PointerDown{Pt: image.Pt(10, 10)},
		PointerMove{Pt: image.Pt(15, 10)},
		PointerUp{Pt: image.Pt(15, 10)},
	}
	for _, ev := range events {
		_, err := a.Dispatch(ev)
		require.NoError(t, err)
	}
	assert.Equal(t, red, a.DisplaySurface().RGBAAt(15, 10), "first star vertex sits on the outer point")

	repaint, err := a.Dispatch(Undo{})
	require.NoError(t, err)
	assert.True(t, repaint)
	repaint, err = a.Dispatch(Redo{})
	require.NoError(t, err)
	assert.True(t, repaint)
	repaint, err = a.Dispatch(Clear{})
	require.NoError(t, err)
	assert.True(t, repaint)
	repaint, err = a.Dispatch(Resize{Width: 40, Height: 10})
	require.NoError(t, err)
	assert.True(t, repaint)
	assert.Equal(t, image.Pt(40, 20), a.Size())
}

func TestSettingsListener(t *testing.T) {
	var gotTool Tool
	var gotColor color.RGBA
	var gotWidth int
	calls := 0
	a := newTestState(4, 4, WithSettingsListener(func(tool Tool, col color.RGBA, width int) {
		gotTool, gotColor, gotWidth = tool, col, width
		calls++
	}))
	a.SelectTool(ToolEllipse)
	a.SetColor(red)
	a.SetStrokeWidth(0)

	assert.Equal(t, 3, calls)
	assert.Equal(t, ToolEllipse, gotTool)
	assert.Equal(t, red, gotColor)
	assert.Equal(t, 1, gotWidth, "widths below one are raised")
}

func TestAntialiasOption(t *testing.T) {
	a := newTestState(20, 10, WithAntialias(true), WithStrokeWidth(3))
	a.PointerDown(image.Pt(2, 5))
	a.PointerMove(image.Pt(17, 5))
	a.PointerUp(image.Pt(17, 5))
	assert.NotEqual(t, white, a.DisplaySurface().RGBAAt(10, 5))
}

func TestLastSnapshotID(t *testing.T) {
	a := newTestState(4, 4)
	_, ok := a.LastSnapshotID()
	assert.False(t, ok)
	a.Clear()
	id, ok := a.LastSnapshotID()
	assert.True(t, ok)
	assert.NotEmpty(t, id.String())
}
