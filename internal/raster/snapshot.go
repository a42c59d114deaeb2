package raster

import (
	"bytes"
	"image"
	"image/color"

	"github.com/google/uuid"
)

// Snapshot is a frozen copy of a surface. Nothing mutates its pixels once it
// has been taken.
type Snapshot struct {
	id  uuid.UUID
	img *image.RGBA
	bg  color.RGBA
}

var _ image.Image = (*Snapshot)(nil)

func newSnapshot(img *image.RGBA, bg color.RGBA) *Snapshot {
	return &Snapshot{id: uuid.New(), img: img, bg: bg}
}

// ID identifies the snapshot for diagnostics.
func (s *Snapshot) ID() uuid.UUID { return s.id }

func (s *Snapshot) ColorModel() color.Model { return color.RGBAModel }
func (s *Snapshot) Bounds() image.Rectangle { return s.img.Bounds() }
func (s *Snapshot) At(x, y int) color.Color { return s.img.At(x, y) }
func (s *Snapshot) RGBAAt(x, y int) color.RGBA { return s.img.RGBAAt(x, y) }
func (s *Snapshot) Background() color.RGBA { return s.bg }

// RGBA returns a private copy of the pixels, suitable for encoders that may
// run on another goroutine.
func (s *Snapshot) RGBA() *image.RGBA { return cloneRGBA(s.img) }

// Surface returns a new mutable surface holding the snapshot's pixels.
func (s *Snapshot) Surface(opts ...Option) *Surface {
	out := &Surface{img: cloneRGBA(s.img), bg: s.bg, renderer: CrispRenderer{}}
	for _, opt := range opts {
		opt(out)
	}
	return out
}

// Equal reports whether both snapshots hold identical pixels.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.img.Bounds() == o.img.Bounds() && bytes.Equal(s.img.Pix, o.img.Pix)
}
