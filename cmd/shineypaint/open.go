package main

import (
	"flag"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/example/shineypaint/internal/appstate"
	"github.com/example/shineypaint/internal/imagefile"
)

// openCmd runs the paint window.
type openCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
	size   string
	width  int
	height int
}

func (o *openCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	o := &openCmd{root: r.subcommand("open"), fs: fs}
	fs.Usage = usageFunc(o)
	fs.StringVar(&o.file, "file", "", "image to open; ctrl+o reloads it")
	fs.StringVar(&o.output, "output", "", "file written by ctrl+s (defaults to -file, or untitled.png in save_dir)")
	fs.StringVar(&o.size, "size", "", "blank canvas size as WxH")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && o.file == "" {
		o.file = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: o}
	}
	if o.size != "" {
		w, h, err := parseSize(o.size)
		if err != nil {
			return nil, err
		}
		o.width, o.height = w, h
	}
	if o.output == "" {
		if o.file != "" {
			o.output = o.file
		} else {
			o.output = o.config.OutputPath("untitled.png")
		}
	}
	return o, nil
}

func (o *openCmd) Run() error {
	opts := o.stateOptions()
	if o.width > 0 {
		opts = append(opts, appstate.WithSize(o.width, o.height))
	}
	if o.file != "" {
		img, err := imagefile.Load(o.file)
		if err != nil {
			return err
		}
		opts = append(opts, appstate.WithImage(img))
	}
	opts = append(opts,
		appstate.WithInput(o.file),
		appstate.WithOutput(o.output),
		appstate.WithSettingsListener(func(tool appstate.Tool, col color.RGBA, width int) {
			o.rememberSettings(tool, col, width)
		}),
		appstate.WithActionListener(func(action, detail string) {
			if o.notifier != nil {
				o.notifier.Action(action, detail)
			}
		}),
		appstate.WithOnClose(o.saveSettings),
	)
	appstate.New(opts...).Run()
	return nil
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, werr := strconv.Atoi(ws)
	h, herr := strconv.Atoi(hs)
	if werr != nil || herr != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	return w, h, nil
}
