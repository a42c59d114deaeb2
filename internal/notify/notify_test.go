package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/shineypaint/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	original := platformNotify
	platformNotify = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { platformNotify = original })
	return &got
}

func TestLoadPreferencesEnv(t *testing.T) {
	t.Setenv("SHINEYPAINT_NOTIFY_TITLE", "Paint")
	t.Setenv("SHINEYPAINT_NOTIFY_LOAD_TEXT", "Loaded %s")
	prefs := LoadPreferences()
	if prefs.Title != "Paint" {
		t.Fatalf("title = %q", prefs.Title)
	}
	if got := prefs.Events[EventLoad].Template; got != "Loaded %s" {
		t.Fatalf("load template = %q", got)
	}
	if got := prefs.Events[EventSave].Template; got != "Saved %s" {
		t.Fatalf("save template = %q", got)
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Copy("x")
	n.Save("out.png")
	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %v", *got)
	}
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := capture(t)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Action("save", path)
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != "ShineyPaint" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestActionRoutesCopy(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Action("copy", "")
	n.Action("paste", "ignored")
	if len(*got) != 1 || (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}
