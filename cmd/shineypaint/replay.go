package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/example/shineypaint/internal/appstate"
)

// Script is a recorded editing session.
type Script struct {
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Background string `json:"background,omitempty"`
	Steps      []Step `json:"steps"`
}

// Step is one editor event. Which fields are read depends on Op.
type Step struct {
	Op     string `json:"op"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Tool   string `json:"tool,omitempty"`
	Color  string `json:"color,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Path   string `json:"path,omitempty"`
}

// replayCmd feeds a Script through the editor's event interface.
type replayCmd struct {
	*root
	fs     *flag.FlagSet
	script string
	output string
}

func (p *replayCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	p := &replayCmd{root: r.subcommand("replay"), fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.script, "script", "", "JSON script to run (- for stdin)")
	fs.StringVar(&p.output, "output", "", "save the final canvas here")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if p.script == "" && fs.NArg() == 1 {
		p.script = fs.Arg(0)
	}
	if p.script == "" {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *replayCmd) Run() error {
	var in io.Reader = os.Stdin
	if p.script != "-" {
		f, err := os.Open(p.script)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var sc Script
	if err := json.NewDecoder(in).Decode(&sc); err != nil {
		return fmt.Errorf("read script %s: %w", p.script, err)
	}
	st, err := p.replay(context.Background(), sc)
	if err != nil {
		return err
	}
	if p.output != "" {
		if err := st.Save(p.output); err != nil {
			return err
		}
		fmt.Fprintf(p.errOut(), "saved %s\n", p.output)
		p.notifySave(p.output)
	}
	return nil
}

// replay runs the script on a fresh editor and returns it.
func (p *replayCmd) replay(ctx context.Context, sc Script) (*appstate.AppState, error) {
	opts := p.stateOptions()
	if sc.Width > 0 && sc.Height > 0 {
		opts = append(opts, appstate.WithSize(sc.Width, sc.Height))
	}
	if sc.Background != "" {
		bg, err := appstate.ParseColor(sc.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, appstate.WithBackground(bg))
	}
	st := appstate.New(opts...)
	for i, step := range sc.Steps {
		ev, err := stepEvent(ctx, st, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		if _, err := st.Dispatch(ev); err != nil {
			switch {
			case errors.Is(err, appstate.ErrLoadDeferred):
				fmt.Fprintf(p.errOut(), "step %d: load applies when the stroke ends\n", i+1)
				continue
			case errors.Is(err, appstate.ErrStroking):
				fmt.Fprintf(p.errOut(), "step %d: %s ignored during a stroke\n", i+1, step.Op)
				continue
			}
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		switch e := ev.(type) {
		case appstate.Saved:
			fmt.Fprintf(p.errOut(), "saved %s\n", e.Path)
			p.notifySave(e.Path)
		case appstate.Loaded:
			p.notifyLoad(e.Path)
		}
	}
	return st, nil
}

// stepEvent turns a step into an engine event. Loads and saves run through
// the background requests and wait for their result.
func stepEvent(ctx context.Context, st *appstate.AppState, s Step) (appstate.Event, error) {
	pt := image.Pt(s.X, s.Y)
	switch s.Op {
	case "down":
		return appstate.PointerDown{Pt: pt}, nil
	case "move":
		return appstate.PointerMove{Pt: pt}, nil
	case "up":
		return appstate.PointerUp{Pt: pt}, nil
	case "tool":
		t, err := appstate.ParseTool(s.Tool)
		if err != nil {
			return nil, err
		}
		return appstate.SelectTool{Tool: t}, nil
	case "color":
		c, err := appstate.ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		return appstate.SetColor{Color: c}, nil
	case "width":
		return appstate.SetStrokeWidth{Width: s.Width}, nil
	case "resize":
		return appstate.Resize{Width: s.Width, Height: s.Height}, nil
	case "undo":
		return appstate.Undo{}, nil
	case "redo":
		return appstate.Redo{}, nil
	case "clear":
		return appstate.Clear{}, nil
	case "load":
		if s.Path == "" {
			return nil, errors.New("load requires a path")
		}
		return <-st.RequestLoad(ctx, s.Path), nil
	case "save":
		if s.Path == "" {
			return nil, errors.New("save requires a path")
		}
		return <-st.RequestSave(ctx, s.Path), nil
	}
	return nil, fmt.Errorf("unknown op %q", s.Op)
}
