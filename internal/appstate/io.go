package appstate

import (
	"context"
	"image"

	"github.com/example/shineypaint/internal/imagefile"
	"github.com/example/shineypaint/internal/raster"
)

// Load replaces the canvas with the image at path. The replacement is an
// undoable edit; on error nothing changes.
func (a *AppState) Load(path string) error {
	img, err := imagefile.Load(path)
	if err != nil {
		return err
	}
	return a.LoadImage(img)
}

// LoadImage replaces the canvas with a copy of img, size included.
func (a *AppState) LoadImage(img image.Image) error {
	return a.loadSurface(raster.FromImage(img, a.surface.Background(), raster.WithRenderer(a.renderer)))
}

func (a *AppState) loadSurface(s *raster.Surface) error {
	if a.stroke != nil {
		a.pending = s
		return ErrLoadDeferred
	}
	a.applyLoaded(s)
	return nil
}

func (a *AppState) applyLoaded(s *raster.Surface) {
	a.history.BeginEdit(a.surface)
	a.surface = s
}

// Save writes the canvas to path in the format named by its suffix.
func (a *AppState) Save(path string) error {
	return imagefile.Save(path, a.surface.Snapshot())
}

// RequestLoad decodes path on another goroutine. The single Loaded event
// sent on the returned channel must be passed to Dispatch to take effect.
func (a *AppState) RequestLoad(ctx context.Context, path string) <-chan Event {
	bg := a.surface.Background()
	r := a.renderer
	ch := make(chan Event, 1)
	go func() {
		defer close(ch)
		img, err := imagefile.Load(path)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			ch <- Loaded{Path: path, Err: err}
			return
		}
		ch <- Loaded{Path: path, Surface: raster.FromImage(img, bg, raster.WithRenderer(r))}
	}()
	return ch
}

// RequestSave encodes a snapshot of the canvas on another goroutine and
// reports the outcome as a Saved event.
func (a *AppState) RequestSave(ctx context.Context, path string) <-chan Event {
	snap := a.surface.Snapshot()
	ch := make(chan Event, 1)
	go func() {
		defer close(ch)
		if err := ctx.Err(); err != nil {
			ch <- Saved{Path: path, Err: err}
			return
		}
		ch <- Saved{Path: path, Err: imagefile.Save(path, snap)}
	}()
	return ch
}
