// Package config loads the application settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cody-why/mouse-pilot/internal/hotkey"
	"github.com/cody-why/mouse-pilot/internal/keymap"
	"github.com/cody-why/mouse-pilot/pkg/utils"
)

// Config holds all mouse-pilot configuration.
type Config struct {
	Language  string           `yaml:"language"`
	Capture   CaptureConfig    `yaml:"capture"`
	Playback  PlaybackConfig   `yaml:"playback"`
	Hotkey    HotkeyConfig     `yaml:"hotkey"`
	Storage   StorageConfig    `yaml:"storage"`
	Shortcuts []ShortcutConfig `yaml:"shortcuts"`
}

type CaptureConfig struct {
	PollIntervalMs  int `yaml:"poll_interval_ms"`
	MinMoveDistance int `yaml:"min_move_distance"`
}

type PlaybackConfig struct {
	WaitSliceMs int `yaml:"wait_slice_ms"`
}

type HotkeyConfig struct {
	PollIntervalMs int `yaml:"poll_interval_ms"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// ShortcutConfig overrides the key combination of a built-in action.
type ShortcutConfig struct {
	Name  string `yaml:"name"`
	Key   string `yaml:"key"`
	Ctrl  bool   `yaml:"ctrl"`
	Shift bool   `yaml:"shift"`
	Alt   bool   `yaml:"alt"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Capture:  CaptureConfig{PollIntervalMs: 10, MinMoveDistance: 0},
		Playback: PlaybackConfig{WaitSliceMs: 1000},
		Hotkey:   HotkeyConfig{PollIntervalMs: 16},
	}
}

// DefaultPath returns the settings file location.
func DefaultPath() string {
	return filepath.Join(utils.GetConfigDir(), "config.yaml")
}

// Load reads the settings file. A missing file is not an error: defaults are
// written out so the user has something to edit, and returned. A malformed
// file is reported to the caller, who falls back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := Save(path, cfg); werr != nil {
			return cfg, werr
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Capture.PollIntervalMs <= 0 {
		cfg.Capture.PollIntervalMs = 10
	}
	if cfg.Playback.WaitSliceMs <= 0 {
		cfg.Playback.WaitSliceMs = 1000
	}
	if cfg.Hotkey.PollIntervalMs <= 0 {
		cfg.Hotkey.PollIntervalMs = 16
	}
	return cfg, nil
}

// Save writes the settings file, creating its directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ShortcutTable applies the config overrides onto the built-in table,
// preserving table order (match priority).
func (c Config) ShortcutTable() []hotkey.Shortcut {
	table := hotkey.Defaults()
	for _, override := range c.Shortcuts {
		for i := range table {
			if table[i].Name == override.Name && override.Key != "" {
				table[i].Key = keymap.Normalize(override.Key)
				table[i].Ctrl = override.Ctrl
				table[i].Shift = override.Shift
				table[i].Alt = override.Alt
			}
		}
	}
	return table
}

// MacrosDir resolves the macro storage directory.
func (c Config) MacrosDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return utils.GetMacrosDir()
}
