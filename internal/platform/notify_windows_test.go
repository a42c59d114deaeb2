//go:build windows

package platform

import (
	"strings"
	"testing"
)

func TestToastScriptQuotesAndIcon(t *testing.T) {
	s := toastScript("It's", "body", Options{})
	if !strings.Contains(s, "'It''s'") || strings.Contains(s, "ToastImageAndText02") {
		t.Fatalf("unexpected script: %s", s)
	}
	s = toastScript("t", "b", Options{IconPath: `C:\out.png`})
	if !strings.Contains(s, "ToastImageAndText02") || !strings.Contains(s, `'C:\out.png'`) {
		t.Fatalf("icon missing: %s", s)
	}
}
