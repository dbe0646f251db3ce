package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbusard/graphlayout/pkg/errors"
	"github.com/sbusard/graphlayout/pkg/graph"
	"github.com/sbusard/graphlayout/pkg/pipeline"
)

// renderCommand creates the render command for producing output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		configPath string
		engine     string
		noCache    bool
		refresh    bool
		skipLayout bool
		margin     float64
		noLabels   bool
		noArrows   bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Compute a layout and render output artifacts",
		Long: `Compute a layout and render output artifacts.

The render command runs the full pipeline: positions are computed with the
selected engine, then each requested format is written next to the input
file (or to --output). Use --skip-layout to render a graph whose positions
were already computed with 'layout'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadForceConfig(cmd, configPath)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Engine:  engine,
				Config:  cfg,
				Formats: parseFormats(formatsStr),
				Margin:  margin,
				NoLabel: noLabels,
				NoArrow: noArrows,
				Refresh: refresh,
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache, skipLayout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&configPath, "config", "", "engine config file (default: XDG config dir)")
	cmd.Flags().BoolVar(&skipLayout, "skip-layout", false, "render existing positions without recomputing")

	// Engine flags
	cmd.Flags().StringVarP(&engine, "engine", "e", pipeline.DefaultEngine, "layout engine: force (default), fdp")
	addConfigFlags(cmd)

	// Render flags
	cmd.Flags().Float64Var(&margin, "margin", 0, "SVG margin around the drawing (0 = default)")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit node labels")
	cmd.Flags().BoolVar(&noArrows, "no-arrows", false, "omit edge arrowheads")

	return cmd
}

// runRender loads the graph, runs the pipeline, and writes each artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache, skipLayout bool) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	track := newProgress(c.Logger)

	var (
		artifacts map[string][]byte
		cached    bool
		stats     pipeline.Stats
	)
	if skipLayout {
		artifacts, err = runner.Render(ctx, g, opts)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
	} else {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Engine))
		spinner.Start()
		res, err := runner.Execute(ctx, g, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
		artifacts = res.Artifacts
		cached = res.CacheInfo.LayoutHit
		stats = res.Stats
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	track.done(fmt.Sprintf("Rendered %d artifact(s)", len(artifacts)))

	base := basePath(output, input)
	printSuccess("Render complete")
	for _, format := range opts.Formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(g.Nodes), len(g.Edges), cached)
	printConvergence(stats.Converged, stats.Iterations, stats.MeanForce)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries
// a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
