package config

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
	Load bool
}

// Canvas describes the blank canvas created when no image is opened.
type Canvas struct {
	Width      int
	Height     int
	Background color.RGBA
}

// Pen holds the initial pen settings.
type Pen struct {
	Color color.RGBA
	Width int
}

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	Theme        string
	Antialias    bool
	HistoryLimit int
	Canvas       Canvas
	Pen          Pen
	Notify       Notify
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Canvas: Canvas{
			Width:      640,
			Height:     480,
			Background: color.RGBA{255, 255, 255, 255},
		},
		Pen: Pen{
			Color: color.RGBA{0, 0, 0, 255},
			Width: 2,
		},
	}
}

// OutputPath resolves name against SaveDir, expanding a leading ~. Absolute
// names and an empty SaveDir leave name as is.
func (c *Config) OutputPath(name string) string {
	if c.SaveDir == "" || filepath.IsAbs(name) {
		return name
	}
	dir, err := homedir.Expand(c.SaveDir)
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "antialias = %v\n", c.Antialias)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "background = %s\n", toHex(c.Canvas.Background))
	sb.WriteString("\n")

	sb.WriteString("[pen]\n")
	fmt.Fprintf(&sb, "color = %s\n", toHex(c.Pen.Color))
	fmt.Fprintf(&sb, "width = %d\n", c.Pen.Width)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
