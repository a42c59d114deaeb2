package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/shineypaint/internal/clipboard"
)

const (
	statusHeight = 18
	// resizeMargin is added when the window outgrows the canvas so that
	// dragging the window edge does not reallocate on every size event.
	resizeMargin = 128
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

var toolKeys = map[Tool]rune{
	ToolFreehand: 'f',
	ToolLine:     'l',
	ToolRect:     'r',
	ToolEllipse:  'e',
	ToolStar:     's',
	ToolEraser:   'x',
}

// Key is the window shortcut that selects t.
func (t Tool) Key() rune { return toolKeys[t] }

func defaultShortcuts() map[string]KeyboardShortcuts {
	m := map[string]KeyboardShortcuts{
		"undo":       shortcutList{{Rune: 'z', Modifiers: key.ModControl}},
		"redo":       shortcutList{{Rune: 'y', Modifiers: key.ModControl}, {Rune: 'z', Modifiers: key.ModControl | key.ModShift}},
		"clear":      shortcutList{{Rune: 'n', Modifiers: key.ModControl}},
		"save":       shortcutList{{Rune: 's', Modifiers: key.ModControl}},
		"open":       shortcutList{{Rune: 'o', Modifiers: key.ModControl}},
		"copy":       shortcutList{{Rune: 'c', Modifiers: key.ModControl}},
		"paste":      shortcutList{{Rune: 'v', Modifiers: key.ModControl}},
		"width-down": shortcutList{{Rune: '['}},
		"width-up":   shortcutList{{Rune: ']'}},
		"quit":       shortcutList{{Rune: 'q'}, {Code: key.CodeEscape}},
	}
	for t, r := range toolKeys {
		m["tool-"+t.String()] = shortcutList{{Rune: r}}
	}
	for i := 1; i <= 9; i++ {
		m[fmt.Sprintf("color-%d", i)] = shortcutList{{Rune: rune('0' + i)}}
	}
	return m
}

func bindShortcuts(defs map[string]KeyboardShortcuts) map[KeyShortcut]string {
	out := map[KeyShortcut]string{}
	for name, keys := range defs {
		for _, sc := range keys.KeyboardShortcuts() {
			out[sc] = name
		}
	}
	return out
}

// actionForKey resolves e against the bindings, matching on the rune first
// and then on the key code so either form of registration works.
func actionForKey(bindings map[KeyShortcut]string, e key.Event) (string, bool) {
	r := unicode.ToLower(e.Rune)
	candidates := []KeyShortcut{
		{Rune: r, Code: e.Code, Modifiers: e.Modifiers},
		{Rune: r, Modifiers: e.Modifiers},
		{Code: e.Code, Modifiers: e.Modifiers},
	}
	for _, ks := range candidates {
		if ks.Rune <= 0 && ks.Code == key.CodeUnknown {
			continue
		}
		if ks.Rune < 0 {
			ks.Rune = 0
		}
		if action, ok := bindings[ks]; ok {
			return action, true
		}
	}
	return "", false
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main opens a window on s and runs the event loop until it is closed.
func (a *AppState) Main(s screen.Screen) {
	sz := a.Size()
	width, height := sz.X, sz.Y+statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "ShineyPaint"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var message string
	var messageUntil time.Time
	showMessage := func(msg string) {
		message = msg
		log.Print(msg)
		messageUntil = time.Now().Add(2 * time.Second)
	}
	forward := func(ch <-chan Event) {
		go func() {
			for ev := range ch {
				w.Send(ev)
			}
		}()
	}
	fit := func() {
		cur := a.Size()
		if width > cur.X || height-statusHeight > cur.Y {
			a.Resize(width+resizeMargin, height-statusHeight+resizeMargin)
		}
	}

	actions := map[string]func(){
		"undo": func() {
			if !a.Undo() {
				showMessage(refusal(a, "undoing", "nothing to undo"))
			}
		},
		"redo": func() {
			if !a.Redo() {
				showMessage(refusal(a, "redoing", "nothing to redo"))
			}
		},
		"clear": func() {
			if !a.Clear() {
				showMessage(refusal(a, "clearing", "nothing to clear"))
			}
		},
		"save": func() {
			if a.Output == "" {
				showMessage("no output file set")
				return
			}
			forward(a.RequestSave(ctx, a.Output))
		},
		"open": func() {
			if a.Input == "" {
				showMessage("no input file set")
				return
			}
			forward(a.RequestLoad(ctx, a.Input))
		},
		"copy": func() {
			if err := clipboard.WriteImage(a.DisplaySurface().RGBA()); err != nil {
				log.Printf("copy: %v", err)
				return
			}
			showMessage("image copied to clipboard")
			a.notifyAction("copy", "")
		},
		"paste": func() {
			img, err := clipboard.ReadImage()
			if err != nil {
				log.Printf("paste: %v", err)
				return
			}
			if err := a.LoadImage(img); err != nil {
				log.Printf("paste: %v", err)
				return
			}
			showMessage("pasted image from clipboard")
			a.notifyAction("load", "clipboard")
		},
		"width-down": func() { a.SetStrokeWidth(stepWidth(a.StrokeWidth(), -1)) },
		"width-up":   func() { a.SetStrokeWidth(stepWidth(a.StrokeWidth(), 1)) },
	}
	for _, t := range Tools() {
		actions["tool-"+t.String()] = func() {
			if !a.SelectTool(t) {
				showMessage(refusal(a, "switching tools", "unknown tool"))
			}
		}
	}
	for i := 1; i <= 9; i++ {
		idx := i - 1
		actions[fmt.Sprintf("color-%d", i)] = func() { a.SetColor(paletteColorAt(idx)) }
	}
	keyboardAction := bindShortcuts(defaultShortcuts())

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			fit()
			w.Send(paint.Event{})
		case paint.Event:
			status := statusText(a)
			transient := message != "" && time.Now().Before(messageUntil)
			if transient {
				status = message
			}
			a.drawFrame(s, w, width, height, status, transient)
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				a.PointerDown(p)
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				if a.PointerUp(p) {
					fit()
					w.Send(paint.Event{})
				}
			case e.Direction == mouse.DirNone:
				if a.PointerMove(p) {
					w.Send(paint.Event{})
				}
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			action, ok := actionForKey(keyboardAction, e)
			if !ok {
				continue
			}
			if action == "quit" {
				return
			}
			if fn, ok := actions[action]; ok {
				fn()
				fit()
				w.Send(paint.Event{})
			}
		case Event:
			repaint, err := a.Dispatch(e)
			switch ev := e.(type) {
			case Loaded:
				switch {
				case errors.Is(err, ErrLoadDeferred):
					showMessage("load will apply after the stroke")
				case err != nil:
					log.Printf("load: %v", err)
					showMessage("load failed")
				default:
					showMessage(fmt.Sprintf("loaded %s", ev.Path))
					a.notifyAction("load", ev.Path)
				}
			case Saved:
				if err != nil {
					log.Printf("save: %v", err)
					showMessage("save failed")
				} else {
					showMessage(fmt.Sprintf("saved %s", ev.Path))
					a.notifyAction("save", ev.Path)
				}
			}
			if repaint {
				fit()
			}
			w.Send(paint.Event{})
		}
	}
}

func (a *AppState) drawFrame(s screen.Screen, w screen.Window, width, height int, status string, transient bool) {
	b, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	dst := b.RGBA()
	th := a.theme
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Frame), image.Point{}, draw.Src)
	a.RenderTo(dst)

	bar := image.Rect(0, height-statusHeight, width, height)
	draw.Draw(dst, bar, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	text := th.StatusText
	if transient {
		text = th.StatusMessage
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(text), Face: basicfont.Face7x13}
	d.Dot = fixed.P(4, height-5)
	d.DrawString(status)

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// refusal explains why a window action did nothing: a stroke in progress,
// otherwise the action's own reason.
func refusal(a *AppState, doing, otherwise string) string {
	if a.Stroking() {
		return "finish the stroke before " + doing
	}
	return otherwise
}

// statusText summarises the tool, pen and history for the status bar.
func statusText(a *AppState) string {
	c := a.Color()
	undo, redo := a.HistoryDepth()
	return fmt.Sprintf("%s  width %d  #%02X%02X%02X  undo %d  redo %d",
		a.Tool(), a.StrokeWidth(), c.R, c.G, c.B, undo, redo)
}
