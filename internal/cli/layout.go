package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbusard/graphlayout/pkg/errors"
	"github.com/sbusard/graphlayout/pkg/graph"
	"github.com/sbusard/graphlayout/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		engine     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command takes a graph.json file and computes positions with the
force-directed engine. The output is a graph.json file with updated node
coordinates that can be rendered with the 'render' command.

The fdp engine (-e fdp) delegates position computation to Graphviz instead
of the built-in engine.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadForceConfig(cmd, configPath)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Engine:  engine,
				Config:  cfg,
				Refresh: refresh,
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&configPath, "config", "", "engine config file (default: XDG config dir)")

	// Engine flags
	cmd.Flags().StringVarP(&engine, "engine", "e", pipeline.DefaultEngine, "layout engine: force (default), fdp")
	addConfigFlags(cmd)

	return cmd
}

// runLayout loads the graph, computes positions, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Engine))
	spinner.Start()

	res, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := errors.ValidateOutputPath(outputPath); err != nil {
		return err
	}

	if err := graph.WriteFile(res.Graph, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.LayoutHit)
	printConvergence(res.Stats.Converged, res.Stats.Iterations, res.Stats.MeanForce)
	if !res.Stats.Converged && res.Stats.Iterations > 0 {
		printWarning("layout did not settle; raise --iterations or --threshold")
	}
	printNewline()
	printNextStep("Render", "graphlayout render "+outputPath)

	return nil
}
