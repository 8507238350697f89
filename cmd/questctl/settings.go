package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/neexbeast/quest-generator/internal/quest"
)

const settingsFile = ".questctl.toml"

// Settings are per-user defaults. Command-line flags override them.
type Settings struct {
	Server    string           `toml:"server"`
	Timeout   string           `toml:"timeout"`
	UserID    string           `toml:"user_id"`
	Level     string           `toml:"level"`
	Interests []string         `toml:"interests"`
	Duration  float64          `toml:"duration"`
	Location  LocationSettings `toml:"location"`
}

type LocationSettings struct {
	Neighborhood string `toml:"neighborhood"`
	City         string `toml:"city"`
	State        string `toml:"state"`
	Landmark     string `toml:"landmark"`
}

func (l LocationSettings) location() *quest.Location {
	if l == (LocationSettings{}) {
		return nil
	}
	loc := quest.Location(l)
	return &loc
}

// TimeoutDuration parses Timeout, returning 0 when unset.
func (s Settings) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("settings timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, settingsFile)
}

// loadSettings decodes the TOML file at path. A missing file yields empty
// settings unless the caller asked for it explicitly.
func loadSettings(path string, explicit bool) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return s, nil
		}
		return s, fmt.Errorf("opening settings: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&s); err != nil {
		return s, fmt.Errorf("decoding %s: %w", path, err)
	}
	return s, nil
}
