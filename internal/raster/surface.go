package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// Pen is the colour and stroke width applied to a segment or shape.
type Pen struct {
	Color color.RGBA
	Width int
}

// Surface is a mutable raster with a solid background colour. It only ever
// grows, and its pixel buffer is never handed out directly.
type Surface struct {
	img      *image.RGBA
	bg       color.RGBA
	renderer Renderer
}

// Option configures a Surface.
type Option func(*Surface)

// WithRenderer selects the stroke renderer. The default is CrispRenderer.
func WithRenderer(r Renderer) Option {
	return func(s *Surface) {
		if r != nil {
			s.renderer = r
		}
	}
}

// New creates a w×h surface filled with bg.
func New(w, h int, bg color.RGBA, opts ...Option) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, w, h)), bg: bg, renderer: CrispRenderer{}}
	for _, opt := range opts {
		opt(s)
	}
	s.Fill(bg)
	return s
}

// FromImage copies src into a new surface anchored at the origin.
func FromImage(src image.Image, bg color.RGBA, opts ...Option) *Surface {
	b := src.Bounds()
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy())), bg: bg, renderer: CrispRenderer{}}
	for _, opt := range opts {
		opt(s)
	}
	draw.Draw(s.img, s.img.Bounds(), src, b.Min, draw.Src)
	return s
}

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }
func (s *Surface) Width() int { return s.img.Bounds().Dx() }
func (s *Surface) Height() int { return s.img.Bounds().Dy() }
func (s *Surface) Background() color.RGBA { return s.bg }

// RGBAAt returns the pixel at (x, y), or the zero colour outside the surface.
func (s *Surface) RGBAAt(x, y int) color.RGBA { return s.img.RGBAAt(x, y) }

// Resize grows the surface so it is at least w×h. Existing pixels keep their
// position and new pixels take the background colour. It reports whether the
// surface changed size.
func (s *Surface) Resize(w, h int) bool {
	b := s.img.Bounds()
	if w <= b.Dx() && h <= b.Dy() {
		return false
	}
	if w < b.Dx() {
		w = b.Dx()
	}
	if h < b.Dy() {
		h = b.Dy()
	}
	grown := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(grown, grown.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
	draw.Draw(grown, b, s.img, image.Point{}, draw.Src)
	s.img = grown
	return true
}

// Fill overwrites every pixel with c.
func (s *Surface) Fill(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawSegment strokes a round-capped segment from one point to another.
func (s *Surface) DrawSegment(from, to image.Point, pen Pen) {
	s.renderer.Polyline(s.img, []image.Point{from, to}, false, pen)
}

// DrawShape strokes the outline of kind spanned by anchor and current.
func (s *Surface) DrawShape(kind Shape, anchor, current image.Point, pen Pen) {
	pts, closed := ShapePoints(kind, anchor, current)
	s.renderer.Polyline(s.img, pts, closed, pen)
}

// Clone returns an independent copy sharing only the renderer.
func (s *Surface) Clone() *Surface {
	return &Surface{img: cloneRGBA(s.img), bg: s.bg, renderer: s.renderer}
}

// CopyFrom replaces the contents of s with src, reusing the buffer when the
// sizes match.
func (s *Surface) CopyFrom(src *Surface) {
	s.bg = src.bg
	if s.img.Bounds() == src.img.Bounds() {
		copy(s.img.Pix, src.img.Pix)
		return
	}
	s.img = cloneRGBA(src.img)
}

// Snapshot returns an immutable copy of the current pixels.
func (s *Surface) Snapshot() *Snapshot {
	return newSnapshot(cloneRGBA(s.img), s.bg)
}

// Restore replaces the contents of s with snap, size included. snap itself is
// left untouched.
func (s *Surface) Restore(snap *Snapshot) {
	s.img = cloneRGBA(snap.img)
	s.bg = snap.bg
}

// DrawTo copies the surface onto dst with its origin at at.
func (s *Surface) DrawTo(dst draw.Image, at image.Point) {
	draw.Draw(dst, s.img.Bounds().Add(at), s.img, image.Point{}, draw.Src)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
