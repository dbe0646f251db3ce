// Package pipeline provides the core layout pipeline.
//
// This package implements the complete load → layout → render pipeline
// that is shared by the CLI and the HTTP server. Centralizing this logic
// keeps behavior consistent across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: compute node positions for the graph (force or fdp engine)
//  2. Render: generate output artifacts (JSON, SVG)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage is cached under a content hash of its inputs.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Engine:  pipeline.EngineForce,
//	    Formats: []string{pipeline.FormatSVG},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/sbusard/graphlayout/pkg/errors"
	"github.com/sbusard/graphlayout/pkg/force"
)

// =============================================================================
// Defaults - Single Source of Truth for CLI and Server
// =============================================================================

// Engine constants for layout engines.
const (
	// EngineForce is the built-in spring/repulsion engine.
	EngineForce = "force"

	// EngineFDP delegates to Graphviz's fdp via the dot subpackage.
	EngineFDP = "fdp"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// DefaultEngine is the layout engine used when none is requested.
const DefaultEngine = EngineForce

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	EngineForce: true,
	EngineFDP:   true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateEngine checks that an engine name is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine,
			"invalid engine: %q (must be one of: force, fdp)", engine)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Engine string       `json:"engine,omitempty"`
	Config force.Config `json:"config,omitzero"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Margin  float64  `json:"margin,omitempty"`
	NoLabel bool     `json:"no_labels,omitempty"`
	NoArrow bool     `json:"no_arrows,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if (o.Config == force.Config{}) {
		o.Config = force.DefaultConfig()
	}
	if err := o.Config.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid layout configuration")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
