// Package config loads engine configuration from TOML files.
//
// Settings are applied on top of the built-in defaults, so a config file
// only needs to name the values it changes:
//
//	[force]
//	spring_stiffness = 0.25
//	repulsion = 800.0
//
// The default location is $XDG_CONFIG_HOME/graphlayout/config.toml
// (falling back to ~/.config/graphlayout/config.toml). A missing file is
// not an error; defaults apply.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sbusard/graphlayout/pkg/force"
)

// File is the top-level structure of a config file.
type File struct {
	Force force.Config `toml:"force"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{Force: force.DefaultConfig()}
}

// Load reads a TOML config file and overlays it on the defaults. If the
// file does not exist, the defaults are returned unchanged. The result is
// validated before being returned.
func Load(path string) (File, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return File{}, err
	}

	// Decoding into the pre-populated struct leaves unset keys at their
	// defaults.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return File{}, err
	}
	if err := cfg.Force.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "graphlayout", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "graphlayout", "config.toml"), nil
}
