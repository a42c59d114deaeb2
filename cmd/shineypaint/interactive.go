package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/shineypaint/internal/appstate"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives an editor from typed commands.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	execs  commandList
	file   string
	output string
	stdin  io.Reader

	state *appstate.AppState
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r.subcommand("interactive"), fs: fs}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	fs.StringVar(&i.file, "file", "", "image to start from")
	fs.StringVar(&i.output, "output", "", "default path for save")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	i.state = appstate.New(i.stateOptions()...)
	if i.file != "" {
		if err := i.state.Load(i.file); err != nil {
			return err
		}
		if i.output == "" {
			i.output = i.file
		}
	}
	defer func() {
		i.rememberSettings(i.state.Tool(), i.state.Color(), i.state.StrokeWidth())
		i.saveSettings()
	}()

	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	in := i.stdin
	if in == nil {
		in = os.Stdin
	}
	out := i.out()
	fmt.Fprintln(out, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command. done reports that the session should end.
func (i *interactiveCmd) executeLine(line string) (done bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	st := i.state
	out := i.out()
	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(out, interactiveHelp)
		return false, nil
	case "status":
		i.printStatus()
		return false, nil
	case "tool":
		if len(rest) == 0 {
			fmt.Fprintln(out, st.Tool())
			return false, nil
		}
		t, err := appstate.ParseTool(rest[0])
		if err != nil {
			return false, err
		}
		return false, i.dispatch(appstate.SelectTool{Tool: t})
	case "color":
		if len(rest) == 0 {
			fmt.Fprintln(out, appstate.FormatColor(st.Color()))
			return false, nil
		}
		c, err := appstate.ParseColor(strings.Join(rest, " "))
		if err != nil {
			return false, err
		}
		return false, i.dispatch(appstate.SetColor{Color: c})
	case "width":
		if len(rest) == 0 {
			fmt.Fprintln(out, st.StrokeWidth())
			return false, nil
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return false, fmt.Errorf("invalid width %q", rest[0])
		}
		return false, i.dispatch(appstate.SetStrokeWidth{Width: n})
	case "down", "move", "up":
		pt, err := parsePoint(cmd, rest)
		if err != nil {
			return false, err
		}
		var ev appstate.Event
		switch cmd {
		case "down":
			ev = appstate.PointerDown{Pt: pt}
		case "move":
			ev = appstate.PointerMove{Pt: pt}
		default:
			ev = appstate.PointerUp{Pt: pt}
		}
		return false, i.dispatch(ev)
	case "draw":
		return false, i.gesture(rest)
	case "resize":
		w, h, err := parseResize(rest)
		if err != nil {
			return false, err
		}
		return false, i.dispatch(appstate.Resize{Width: w, Height: h})
	case "undo", "redo":
		var ev appstate.Event = appstate.Undo{}
		if cmd == "redo" {
			ev = appstate.Redo{}
		}
		changed, err := i.state.Dispatch(ev)
		if err != nil {
			return false, fmt.Errorf("finish the stroke first: %w", err)
		}
		if !changed {
			fmt.Fprintf(out, "nothing to %s\n", cmd)
		}
		return false, nil
	case "clear":
		return false, i.dispatch(appstate.Clear{})
	case "load", "open":
		if len(rest) != 1 {
			return false, fmt.Errorf("%s requires a path", cmd)
		}
		return false, i.load(rest[0])
	case "save":
		path := i.output
		if len(rest) == 1 {
			path = rest[0]
		}
		if path == "" {
			return false, errors.New("save requires a path")
		}
		return false, i.save(path)
	}
	return false, fmt.Errorf("unknown command %q (try help)", args[0])
}

func (i *interactiveCmd) dispatch(ev appstate.Event) error {
	if _, err := i.state.Dispatch(ev); err != nil {
		if errors.Is(err, appstate.ErrStroking) {
			return fmt.Errorf("finish the stroke first: %w", err)
		}
		return err
	}
	return nil
}

// gesture performs a whole press-drag-release with the named tool.
func (i *interactiveCmd) gesture(args []string) error {
	if len(args) < 1 {
		return errors.New("draw requires a tool and points")
	}
	t, err := appstate.ParseTool(args[0])
	if err != nil {
		return err
	}
	pts, err := expectPoints(args[1:], t)
	if err != nil {
		return err
	}
	if err := i.dispatch(appstate.SelectTool{Tool: t}); err != nil {
		return err
	}
	evs := []appstate.Event{appstate.PointerDown{Pt: pts[0]}}
	for _, p := range pts[1:] {
		evs = append(evs, appstate.PointerMove{Pt: p})
	}
	evs = append(evs, appstate.PointerUp{Pt: pts[len(pts)-1]})
	for _, ev := range evs {
		if err := i.dispatch(ev); err != nil {
			return err
		}
	}
	return nil
}

func (i *interactiveCmd) load(path string) error {
	ev := <-i.state.RequestLoad(context.Background(), path)
	if _, err := i.state.Dispatch(ev); err != nil {
		if errors.Is(err, appstate.ErrLoadDeferred) {
			fmt.Fprintln(i.out(), "load will apply when the stroke ends")
			return nil
		}
		return err
	}
	sz := i.state.Size()
	fmt.Fprintf(i.out(), "loaded %s (%dx%d)\n", path, sz.X, sz.Y)
	i.notifyLoad(path)
	return nil
}

func (i *interactiveCmd) save(path string) error {
	ev := <-i.state.RequestSave(context.Background(), path)
	if _, err := i.state.Dispatch(ev); err != nil {
		return err
	}
	fmt.Fprintf(i.out(), "saved %s\n", path)
	i.notifySave(path)
	return nil
}

func (i *interactiveCmd) printStatus() {
	st := i.state
	sz := st.Size()
	undo, redo := st.HistoryDepth()
	snap := "none"
	if id, ok := st.LastSnapshotID(); ok {
		snap = id.String()
	}
	fmt.Fprintf(i.out(), "tool=%s color=%s width=%d size=%dx%d stroking=%v undo=%d redo=%d snapshot=%s\n",
		st.Tool(), appstate.FormatColor(st.Color()), st.StrokeWidth(), sz.X, sz.Y, st.Stroking(), undo, redo, snap)
}

func parsePoint(cmd string, args []string) (image.Point, error) {
	if len(args) != 2 {
		return image.Point{}, fmt.Errorf("%s requires x y", cmd)
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid integer %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid integer %q", args[1])
	}
	return image.Pt(x, y), nil
}

func parseResize(args []string) (int, int, error) {
	switch len(args) {
	case 1:
		return parseSize(args[0])
	case 2:
		return parseSize(args[0] + "x" + args[1])
	}
	return 0, 0, errors.New("resize requires WxH or w h")
}

const interactiveHelp = `commands:
  tool [name]            show or select freehand, line, rect, ellipse, star, eraser
  color [spec]           show or set the pen color (name or #RRGGBB)
  width [n]              show or set the stroke width
  down|move|up x y       send a single pointer event
  draw tool x y x y ...  press, drag and release with a tool
  resize w h             grow the canvas
  undo | redo | clear
  load path | save [path]
  status                 tool, pen, size and history
  exit
`
