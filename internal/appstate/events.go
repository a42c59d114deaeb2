package appstate

import (
	"image"
	"image/color"

	"github.com/example/shineypaint/internal/raster"
)

// Event is an input to the engine. Hosts either call the AppState methods
// directly or feed events through Dispatch; background loads and saves always
// report back as events.
type Event interface{ event() }

type PointerDown struct{ Pt image.Point }
type PointerMove struct{ Pt image.Point }
type PointerUp struct{ Pt image.Point }
type SelectTool struct{ Tool Tool }
type SetColor struct{ Color color.RGBA }
type SetStrokeWidth struct{ Width int }
type Resize struct{ Width, Height int }
type Undo struct{}
type Redo struct{}
type Clear struct{}

// Loaded carries the result of RequestLoad. Surface is nil when Err is set.
type Loaded struct {
	Path    string
	Surface *raster.Surface
	Err     error
}

// Saved carries the result of RequestSave.
type Saved struct {
	Path string
	Err  error
}

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event() {}
func (SelectTool) event() {}
func (SetColor) event() {}
func (SetStrokeWidth) event() {}
func (Resize) event() {}
func (Undo) event() {}
func (Redo) event() {}
func (Clear) event() {}
func (Loaded) event() {}
func (Saved) event() {}

// Dispatch applies ev and reports whether the display needs repainting.
// Failed loads and saves return their error with the canvas untouched.
func (a *AppState) Dispatch(ev Event) (bool, error) {
	switch e := ev.(type) {
	case PointerDown:
		return a.PointerDown(e.Pt), nil
	case PointerMove:
		return a.PointerMove(e.Pt), nil
	case PointerUp:
		return a.PointerUp(e.Pt), nil
	case SelectTool:
		if a.stroke != nil {
			return false, ErrStroking
		}
		a.SelectTool(e.Tool)
		return false, nil
	case SetColor:
		a.SetColor(e.Color)
		return false, nil
	case SetStrokeWidth:
		a.SetStrokeWidth(e.Width)
		return false, nil
	case Resize:
		return a.Resize(e.Width, e.Height), nil
	case Undo:
		if a.stroke != nil {
			return false, ErrStroking
		}
		return a.Undo(), nil
	case Redo:
		if a.stroke != nil {
			return false, ErrStroking
		}
		return a.Redo(), nil
	case Clear:
		if a.stroke != nil {
			return false, ErrStroking
		}
		return a.Clear(), nil
	case Loaded:
		if e.Err != nil {
			return false, e.Err
		}
		if e.Surface == nil {
			return false, nil
		}
		if err := a.loadSurface(e.Surface); err != nil {
			return false, err
		}
		return true, nil
	case Saved:
		return false, e.Err
	}
	return false, nil
}
