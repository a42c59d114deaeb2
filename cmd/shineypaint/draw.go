package main

import (
	"flag"
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/shineypaint/internal/appstate"
	"github.com/example/shineypaint/internal/clipboard"
)

// drawCmd replays a single pointer gesture with one tool on an image.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	grow          bool
	colorSpec     string
	width         int
	tool          appstate.Tool
	points        []image.Point
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r.subcommand("draw"), fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file (a blank canvas when empty)")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.grow, "grow", false, "grow the canvas so every point fits")
	fs.StringVar(&d.colorSpec, "color", "", "pen color name or hex value (defaults to the saved pen)")
	fs.IntVar(&d.width, "width", 0, "stroke width in pixels (defaults to the saved pen)")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.tool, err = appstate.ParseTool(positionals[0])
	if err != nil {
		return nil, err
	}
	d.points, err = expectPoints(positionals[1:], d.tool)
	if err != nil {
		return nil, err
	}
	if d.colorSpec != "" {
		if _, err := appstate.ParseColor(d.colorSpec); err != nil {
			return nil, err
		}
	}
	if d.fromClipboard && d.output == "" {
		if d.file == "" {
			return nil, fmt.Errorf("output file is required when reading from the clipboard")
		}
		d.output = d.file
	}
	if d.output == "" {
		if d.file == "" {
			return nil, fmt.Errorf("input file or -output is required")
		}
		d.output = d.file
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	opts := d.stateOptions()
	if d.colorSpec != "" {
		col, err := appstate.ParseColor(d.colorSpec)
		if err != nil {
			return err
		}
		opts = append(opts, appstate.WithColor(col))
	}
	if d.width > 0 {
		opts = append(opts, appstate.WithStrokeWidth(d.width))
	}
	st := appstate.New(opts...)

	switch {
	case d.fromClipboard:
		img, err := clipboard.ReadImage()
		if err != nil {
			return fmt.Errorf("read clipboard image: %w", err)
		}
		if err := st.LoadImage(img); err != nil {
			return err
		}
	case d.file != "":
		if err := st.Load(d.file); err != nil {
			return err
		}
	}
	if d.grow {
		st.Resize(fitPoints(d.points, st.StrokeWidth()))
	}

	st.SelectTool(d.tool)
	st.PointerDown(d.points[0])
	for _, p := range d.points[1:] {
		st.PointerMove(p)
	}
	st.PointerUp(d.points[len(d.points)-1])

	if err := st.Save(d.output); err != nil {
		return err
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(d.errOut(), "saved %s\n", saved)
	d.notifySave(saved)
	if d.toClipboard {
		if err := clipboard.WriteImage(st.DisplaySurface()); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(d.errOut(), "copied %s to clipboard\n", detail)
		d.notifyCopy(detail)
	}
	return nil
}

// expectPoints reads x y pairs. Parametric tools take exactly an anchor and a
// release point; freehand strokes take at least two points.
func expectPoints(args []string, tool appstate.Tool) ([]image.Point, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%s requires x y pairs", tool)
	}
	n := len(args) / 2
	if tool.IsParametric() && n != 2 {
		return nil, fmt.Errorf("%s requires 4 integer arguments", tool)
	}
	if n < 2 {
		return nil, fmt.Errorf("%s requires at least 2 points", tool)
	}
	pts := make([]image.Point, n)
	for i := range pts {
		x, err := strconv.Atoi(args[2*i])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i])
		}
		y, err := strconv.Atoi(args[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i+1])
		}
		pts[i] = image.Pt(x, y)
	}
	return pts, nil
}

// fitPoints returns the canvas size that holds every point plus the pen.
// Stars reach beyond their two points, so the anchor-to-release distance is
// added around the anchor.
func fitPoints(pts []image.Point, width int) (int, int) {
	var w, h int
	for _, p := range pts {
		w = max(w, p.X)
		h = max(h, p.Y)
	}
	if len(pts) == 2 {
		d := pts[1].Sub(pts[0])
		r := max(abs(d.X), abs(d.Y))
		w = max(w, pts[0].X+r)
		h = max(h, pts[0].Y+r)
	}
	pad := width/2 + 1
	return w + pad, h + pad
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"to-clipboard":   {},
	"grow":           {},
	"color":          {},
	"width":          {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"to-clipboard":   {},
	"grow":           {},
}

// splitDrawArgs separates known flags from positionals so flags may follow
// the tool name and negative coordinates are not taken for flags.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		base := strings.ToLower(name)
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		switch {
		case hasValue:
			flags = append(flags, norm+"="+value)
		case isBoolFlag(base):
			flags = append(flags, norm)
		case i+1 >= len(args):
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		default:
			flags = append(flags, norm, args[i+1])
			i++
		}
	}
	return flags, positionals, nil
}

func isBoolFlag(name string) bool {
	_, ok := drawBoolFlags[name]
	return ok
}
