package raster

import (
	"image"
	"image/color"
)

// Renderer strokes polylines onto an RGBA buffer.
type Renderer interface {
	Polyline(dst *image.RGBA, pts []image.Point, closed bool, pen Pen)
}

// CrispRenderer stamps a round brush along Bresenham lines. Pixels are
// overwritten without blending and anything outside dst is dropped.
type CrispRenderer struct{}

func (CrispRenderer) Polyline(dst *image.RGBA, pts []image.Point, closed bool, pen Pen) {
	if len(pts) == 0 {
		return
	}
	brush := roundBrush(pen.Width)
	if len(pts) == 1 {
		stamp(dst, pts[0].X, pts[0].Y, brush, pen.Color)
		return
	}
	for i := 1; i < len(pts); i++ {
		drawLine(dst, pts[i-1], pts[i], brush, pen.Color)
	}
	if closed && pts[0] != pts[len(pts)-1] {
		drawLine(dst, pts[len(pts)-1], pts[0], brush, pen.Color)
	}
}

// roundBrush returns the offsets covered by a disc exactly width pixels
// across. Odd widths centre the disc on the pixel; even widths centre it on
// the pixel's top-left corner, so the extra column and row fall up and left.
func roundBrush(width int) []image.Point {
	if width < 1 {
		width = 1
	}
	r := width / 2
	lo, hi := -r, r
	if width%2 == 0 {
		hi = r - 1
	}
	// Offsets are doubled so even widths measure from the half-pixel centre.
	limit := width*width - 1
	out := make([]image.Point, 0, width*width)
	for dy := lo; dy <= hi; dy++ {
		for dx := lo; dx <= hi; dx++ {
			cx, cy := 2*dx+1-width%2, 2*dy+1-width%2
			if cx*cx+cy*cy <= limit {
				out = append(out, image.Pt(dx, dy))
			}
		}
	}
	return out
}

func stamp(img *image.RGBA, x, y int, brush []image.Point, col color.RGBA) {
	b := img.Bounds()
	for _, d := range brush {
		p := image.Pt(x+d.X, y+d.Y)
		if p.In(b) {
			img.SetRGBA(p.X, p.Y, col)
		}
	}
}

func drawLine(img *image.RGBA, from, to image.Point, brush []image.Point, col color.RGBA) {
	x0, y0, x1, y1 := from.X, from.Y, to.X, to.Y
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		stamp(img, x0, y0, brush, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
