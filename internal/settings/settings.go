// Package settings persists the last used tool and pen between sessions.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// Settings is the session state written on exit and restored on start.
// Tool is the tool's integer tag.
type Settings struct {
	Tool  int    `toml:"tool"`
	Color string `toml:"color,omitempty"`
	Width int    `toml:"width,omitempty"`
}

// Path returns the settings file location, honouring XDG_STATE_HOME.
func Path() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "shineypaint", "settings.toml"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "shineypaint", "settings.toml"), nil
}

// Load reads settings from path. A missing file yields the zero Settings.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
