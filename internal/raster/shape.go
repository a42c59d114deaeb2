package raster

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Shape is a parametric outline defined by an anchor and a current point.
type Shape int

const (
	ShapeLine Shape = iota
	ShapeRect
	ShapeEllipse
	ShapeStar
)

const (
	DefaultStarPoints = 5
	DefaultStarRatio  = 0.5
)

func (k Shape) String() string {
	switch k {
	case ShapeLine:
		return "line"
	case ShapeRect:
		return "rect"
	case ShapeEllipse:
		return "ellipse"
	case ShapeStar:
		return "star"
	}
	return "unknown"
}

// ShapePoints returns the polyline for kind and whether it should be closed.
//
// A rectangle uses the two points as opposite corners, an ellipse is inscribed
// in the box they span, and a star is centred on anchor with its first outer
// vertex on current.
func ShapePoints(kind Shape, anchor, current image.Point) ([]image.Point, bool) {
	switch kind {
	case ShapeRect:
		return []image.Point{
			anchor,
			{current.X, anchor.Y},
			current,
			{anchor.X, current.Y},
		}, true
	case ShapeEllipse:
		return EllipsePoints(image.Rectangle{Min: anchor, Max: current}.Canon()), true
	case ShapeStar:
		vs := StarVertices(vec(anchor), vec(current), DefaultStarPoints, DefaultStarRatio)
		pts := make([]image.Point, len(vs))
		for i, v := range vs {
			pts[i] = image.Pt(int(math.Round(v[0])), int(math.Round(v[1])))
		}
		return pts, true
	default:
		return []image.Point{anchor, current}, false
	}
}

// StarVertices returns the 2n vertices of a star centred on center, alternating
// outer and inner points starting with outer. The outer radius is the distance
// from center to outer and the inner radius is that times ratio. Angles are
// measured from the center→outer direction, so the first vertex is outer.
func StarVertices(center, outer f64.Vec2, n int, ratio float64) []f64.Vec2 {
	if n < 2 {
		n = 2
	}
	dx, dy := outer[0]-center[0], outer[1]-center[1]
	r := math.Hypot(dx, dy)
	base := math.Atan2(dy, dx)
	step := 2 * math.Pi / float64(n)
	out := make([]f64.Vec2, 0, 2*n)
	for i := 0; i < n; i++ {
		a := base + float64(i)*step
		out = append(out, f64.Vec2{center[0] + r*math.Cos(a), center[1] + r*math.Sin(a)})
		a += step / 2
		out = append(out, f64.Vec2{center[0] + r*ratio*math.Cos(a), center[1] + r*ratio*math.Sin(a)})
	}
	return out
}

// EllipsePoints samples the ellipse inscribed in r as a closed polyline.
func EllipsePoints(r image.Rectangle) []image.Point {
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt((rx*rx+ry*ry)/2)))
	if steps < 8 {
		steps = 8
	}
	pts := make([]image.Point, 0, steps)
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(cx + math.Cos(angle)*rx))
		y := int(math.Round(cy + math.Sin(angle)*ry))
		if n := len(pts); n > 0 && pts[n-1] == image.Pt(x, y) {
			continue
		}
		pts = append(pts, image.Pt(x, y))
	}
	return pts
}

func vec(p image.Point) f64.Vec2 { return f64.Vec2{float64(p.X), float64(p.Y)} }
