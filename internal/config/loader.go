package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// DefaultPath is where "config save" writes when no file exists yet.
func (l *Loader) DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "shineypaint", "config.rc"), nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if p, err := homedir.Expand(l.OverridePath); err == nil {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".shineypaintrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.rc", "shineypaint.rc"} {
		p := filepath.Join(home, ".config", "shineypaint", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
