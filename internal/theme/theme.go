// Package theme holds the colours of the window chrome around the canvas.
package theme

import (
	"image/color"
)

// Theme defines the colours the window host paints outside the canvas.
type Theme struct {
	Name string

	Frame color.RGBA // Window area not covered by the canvas

	StatusBackground color.RGBA
	StatusText       color.RGBA
	StatusMessage    color.RGBA // Transient messages such as "saved ..."
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Frame:            color.RGBA{96, 96, 96, 255},
		StatusBackground: color.RGBA{235, 235, 235, 255},
		StatusText:       color.RGBA{0, 0, 0, 255},
		StatusMessage:    color.RGBA{0, 64, 160, 255},
	}
}
