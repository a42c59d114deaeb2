package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"github.com/example/shineypaint/internal/appstate"
	"github.com/example/shineypaint/internal/config"
	"github.com/example/shineypaint/internal/notify"
	"github.com/example/shineypaint/internal/settings"
	"github.com/example/shineypaint/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	config       *config.Config
	notifier     *notify.Notifier
	settings     settings.Settings
	settingsPath string
	saveAlerts   bool
	copyAlerts   bool
	loadAlerts   bool
	antialias    bool
	debug        bool
	themeName    string
	activeTheme  *theme.Theme
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	if r == nil || r.program == "" {
		return "shineypaint"
	}
	return r.program
}

// subcommand returns a copy of r whose help names the subcommand.
func (r *root) subcommand(name string) *root {
	var cp root
	if r != nil {
		cp = *r
	}
	if cp.config == nil {
		cp.config = config.New()
	}
	cp.program = strings.TrimSpace(cp.Program() + " " + name)
	return &cp
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("shineypaint", flag.ExitOnError),
		program:  "shineypaint",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
	}
	if path, err := settings.Path(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: no settings location: %v\n", err)
	} else {
		r.settingsPath = path
		if r.settings, err = settings.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load settings: %v\n", err)
		}
	}

	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.loadAlerts, "notify-load", cfg.Notify.Load, "show a desktop notification after opening an image")
	r.fs.BoolVar(&r.antialias, "antialias", cfg.Antialias, "draw strokes with antialiasing")
	r.fs.BoolVar(&r.debug, "debug", false, "log renderer diagnostics")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "window theme ("+strings.Join(theme.Names(), ", ")+" or a file path)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventLoad, r.loadAlerts)
	}
	if r.debug {
		gg.SetLogger(slog.Default())
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("SHINEYPAINT_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		fmt.Fprintf(r.errOut(), "warning: failed to load theme %q: %v. using default.\n", name, err)
		return theme.Default()
	}
	return t
}

// stateOptions layers the configured canvas and pen, then the settings from
// the previous session. Commands append their own flag overrides after these.
func (r *root) stateOptions() []appstate.Option {
	cfg := config.New()
	if r != nil && r.config != nil {
		cfg = r.config
	}
	opts := []appstate.Option{
		appstate.WithSize(cfg.Canvas.Width, cfg.Canvas.Height),
		appstate.WithBackground(cfg.Canvas.Background),
		appstate.WithColor(cfg.Pen.Color),
		appstate.WithStrokeWidth(cfg.Pen.Width),
		appstate.WithHistoryLimit(cfg.HistoryLimit),
	}
	if r == nil {
		return opts
	}
	opts = append(opts, appstate.WithAntialias(r.antialias), appstate.WithTheme(r.activeTheme))
	s := r.settings
	if t, ok := appstate.ToolFromTag(s.Tool); ok {
		opts = append(opts, appstate.WithTool(t))
	}
	if s.Color != "" {
		if c, err := appstate.ParseColor(s.Color); err == nil {
			opts = append(opts, appstate.WithColor(c))
		} else {
			fmt.Fprintf(r.errOut(), "warning: ignoring saved color: %v\n", err)
		}
	}
	if s.Width > 0 {
		opts = append(opts, appstate.WithStrokeWidth(s.Width))
	}
	return opts
}

// rememberSettings records the tool and pen for the next session.
func (r *root) rememberSettings(tool appstate.Tool, col color.RGBA, width int) {
	if r == nil {
		return
	}
	r.settings = settings.Settings{Tool: tool.Tag(), Color: appstate.FormatColor(col), Width: width}
}

func (r *root) saveSettings() {
	if r == nil || r.settingsPath == "" {
		return
	}
	if err := settings.Save(r.settingsPath, r.settings); err != nil {
		fmt.Fprintf(r.errOut(), "warning: failed to save settings: %v\n", err)
	}
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) errOut() io.Writer {
	if r == nil || r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyLoad(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Load(path)
}
