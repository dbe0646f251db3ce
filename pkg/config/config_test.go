package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbusard/graphlayout/pkg/force"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Force != force.DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg.Force)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[force]
spring_stiffness = 0.25
repulsion = 800.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Force.SpringStiffness != 0.25 {
		t.Errorf("SpringStiffness = %v, want 0.25", cfg.Force.SpringStiffness)
	}
	if cfg.Force.Repulsion != 800 {
		t.Errorf("Repulsion = %v, want 800", cfg.Force.Repulsion)
	}
	// Unset keys keep their defaults.
	if cfg.Force.MinSpringLength != force.DefaultMinSpringLength {
		t.Errorf("MinSpringLength = %v, want default %v",
			cfg.Force.MinSpringLength, force.DefaultMinSpringLength)
	}
	if cfg.Force.MaxIterations != force.DefaultMaxIterations {
		t.Errorf("MaxIterations = %v, want default %v",
			cfg.Force.MaxIterations, force.DefaultMaxIterations)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[force]
repulsion = -1.0
`)
	if _, err := Load(path); !errors.Is(err, force.ErrNonPositiveConstant) {
		t.Errorf("Load = %v, want ErrNonPositiveConstant", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[force`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed TOML")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	want := filepath.Join("/tmp/xdg", "graphlayout", "config.toml")
	if path != want {
		t.Errorf("DefaultPath = %q, want %q", path, want)
	}
}
