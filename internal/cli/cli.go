// Package cli implements the graphlayout command-line interface.
//
// This package provides commands for computing force-directed layouts of
// node-link graphs, rendering them to SVG, watching a layout converge in
// the terminal, and serving layouts over HTTP. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute node positions for a graph
//   - render: Compute a layout and render output artifacts
//   - watch: Watch a layout converge step by step in the terminal
//   - serve: Run the HTTP layout server
//   - cache: Manage the local layout cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sbusard/graphlayout/pkg/buildinfo"
	"github.com/sbusard/graphlayout/pkg/cache"
	"github.com/sbusard/graphlayout/pkg/config"
	"github.com/sbusard/graphlayout/pkg/force"
	"github.com/sbusard/graphlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "graphlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "graphlayout",
		Short:        "Graphlayout arranges node-link graphs with a force-directed engine",
		Long:         `Graphlayout is a CLI tool for computing force-directed layouts of node-link graphs. Springs pull connected nodes toward a preferred edge length while repulsion pushes all nodes apart, until the arrangement settles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphlayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Configuration Helpers
// =============================================================================

// loadForceConfig loads the engine configuration, starting from the config
// file (explicit path or the default location) and applying any flag
// overrides the user set.
func loadForceConfig(cmd *cobra.Command, configPath string) (force.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			path = ""
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return force.Config{}, err
		}
	}

	applyConfigFlags(cmd, &cfg.Force)
	if err := cfg.Force.Validate(); err != nil {
		return force.Config{}, err
	}
	return cfg.Force, nil
}

// applyConfigFlags copies engine flags the user explicitly set onto cfg.
// Flags the user did not touch leave the file/default values in place.
func applyConfigFlags(cmd *cobra.Command, cfg *force.Config) {
	flags := cmd.Flags()
	if flags.Changed("stiffness") {
		cfg.SpringStiffness, _ = flags.GetFloat64("stiffness")
	}
	if flags.Changed("spring-length") {
		cfg.MinSpringLength, _ = flags.GetFloat64("spring-length")
	}
	if flags.Changed("repulsion") {
		cfg.Repulsion, _ = flags.GetFloat64("repulsion")
	}
	if flags.Changed("max-force") {
		cfg.MaxForce, _ = flags.GetFloat64("max-force")
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations, _ = flags.GetInt("iterations")
	}
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetFloat64("threshold")
	}
}

// addConfigFlags registers the engine tuning flags shared by layout-running
// commands.
func addConfigFlags(cmd *cobra.Command) {
	defaults := force.DefaultConfig()
	cmd.Flags().Float64("stiffness", defaults.SpringStiffness, "spring stiffness")
	cmd.Flags().Float64("spring-length", defaults.MinSpringLength, "minimum spring rest length")
	cmd.Flags().Float64("repulsion", defaults.Repulsion, "repulsion constant")
	cmd.Flags().Float64("max-force", defaults.MaxForce, "force magnitude cap")
	cmd.Flags().Int("iterations", defaults.MaxIterations, "iteration budget")
	cmd.Flags().Float64("threshold", defaults.Threshold, "convergence threshold on mean force")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
