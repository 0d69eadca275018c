// Package config loads fb's YAML configuration and watches it for edits.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServer is used when no server is configured anywhere.
const DefaultServer = "http://localhost:5000"

// Duration wraps time.Duration so YAML values like "30s" or "5m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Export holds defaults for the headless map snapshot.
type Export struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is fb's user configuration.
type Config struct {
	// Server is the base URL of the field-issue API.
	Server string `yaml:"server"`

	// RefreshInterval enables periodic background reloads when non-zero.
	RefreshInterval Duration `yaml:"refresh_interval"`

	// Theme is a display hint, "dark" or "light".
	Theme string `yaml:"theme"`

	Export Export `yaml:"export"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: DefaultServer,
		Theme:  "dark",
		Export: Export{Width: 1200, Height: 800},
	}
}

// DefaultPath returns ~/.config/fieldboard/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fieldboard", "config.yaml")
}

// Load reads the configuration at path. A missing file yields the defaults;
// a present but malformed file is an error, since silently ignoring a typo'd
// config is worse than failing at startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.Export.Width <= 0 {
		cfg.Export.Width = 1200
	}
	if cfg.Export.Height <= 0 {
		cfg.Export.Height = 800
	}
	return cfg, nil
}
