package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

//go:embed defaults/*.theme
var embedded embed.FS

// Loader finds themes by name or path.
type Loader struct {
	ConfigDir string
}

// NewLoader creates a Loader that also searches ~/.config/shineypaint/themes.
func NewLoader() *Loader {
	dir, err := homedir.Expand("~/.config/shineypaint/themes")
	if err != nil {
		dir = ""
	}
	return &Loader{ConfigDir: dir}
}

// Load resolves name in order: an existing file path, a built-in theme, then
// a file in ConfigDir. An empty name or "default" gives Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" || strings.EqualFold(name, "default") {
		return Default(), nil
	}
	if path, err := homedir.Expand(name); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return parseFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		}
	}
	filename := strings.ToLower(name)
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if t, err := parseFile(embedded, "defaults/"+filename); err == nil {
		return t, nil
	}
	if l.ConfigDir != "" {
		if _, err := os.Stat(filepath.Join(l.ConfigDir, filename)); err == nil {
			return parseFile(os.DirFS(l.ConfigDir), filename)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Names lists the built-in themes.
func Names() []string {
	out := []string{"default"}
	entries, err := embedded.ReadDir("defaults")
	if err != nil {
		return out
	}
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".theme"))
	}
	return out
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
