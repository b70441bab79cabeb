// Copyright 2026 The Updraft Authors. All rights reserved.

// Package config persists display settings between runs.
// The file lives under the user's configuration directory
// and is written back whenever the window geometry changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"updraft/internal/mmap"
)

const (
	appDir   = "updraft"
	fileName = "config.yaml"
)

// Default window geometry.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Display holds the window settings.
type Display struct {
	Width      uint32 `yaml:"width"`
	Height     uint32 `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// Config is the persisted configuration.
type Config struct {
	Display Display `yaml:"display"`
}

// Default returns the configuration used when no file
// exists yet.
func Default() Config {
	return Config{
		Display: Display{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Path resolves the configuration file location.
// $XDG_CONFIG_HOME takes precedence; otherwise the
// platform's user configuration directory is used.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads the configuration from path.
// A missing file is not an error; defaults are returned.
// Zero width or height values are replaced with defaults.
func Load(path string) (Config, error) {
	f, err := mmap.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer f.Close()
	cfg := Default()
	if err := yaml.Unmarshal(f.Bytes(), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Display.Width == 0 {
		cfg.Display.Width = DefaultWidth
	}
	if cfg.Display.Height == 0 {
		cfg.Display.Height = DefaultHeight
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent
// directories as needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
