package raster

import (
	"image"
	"image/draw"
	"log"

	"github.com/gogpu/gg"
)

// SmoothRenderer strokes antialiased polylines with round caps and joins.
type SmoothRenderer struct{}

func (SmoothRenderer) Polyline(dst *image.RGBA, pts []image.Point, closed bool, pen Pen) {
	if len(pts) == 0 {
		return
	}
	width := pen.Width
	if width < 1 {
		width = 1
	}
	dc := gg.NewContextForImage(dst)
	defer dc.Close()
	dc.SetColor(pen.Color)
	dc.SetLineWidth(float64(width))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	// Pixel centres sit on the half grid.
	dc.MoveTo(float64(pts[0].X)+0.5, float64(pts[0].Y)+0.5)
	if len(pts) == 1 {
		dc.LineTo(float64(pts[0].X)+0.5, float64(pts[0].Y)+0.5)
	}
	for _, p := range pts[1:] {
		dc.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
	}
	if closed {
		dc.ClosePath()
	}
	if err := dc.Stroke(); err != nil {
		log.Printf("stroke: %v", err)
		return
	}
	draw.Draw(dst, dst.Bounds(), dc.Image(), image.Point{}, draw.Src)
}
