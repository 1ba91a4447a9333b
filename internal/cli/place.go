package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/placardlabs/placard/pkg/pipeline"
	"github.com/placardlabs/placard/pkg/scene"
)

// placeCommand creates the place command for solving scenes into layouts.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		refresh    bool
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "place [scene.json]",
		Short: "Compute label positions for a scene",
		Long: `Compute label positions for a scene.

The place command takes a scene.json file with anchor points, exclusion
sectors, and a canvas, and computes a collision-free position for every
label. The output is a layout.json file that can be rendered to SVG, PNG,
or PDF using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), args[0], output, configPath, noCache, refresh, iterations)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with placement constants")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "relaxation iterations (0 uses the configured default)")

	return cmd
}

// runPlace loads the scene, solves it, and writes the layout.
func (c *CLI) runPlace(ctx context.Context, input, output, configPath string, noCache, refresh bool, iterations int) error {
	sc, err := scene.ReadSceneFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	cfg, err := loadLayoutConfig(configPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Iterations:   iterations,
		Refresh:      refresh,
		LayoutConfig: cfg,
		Logger:       c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d labels...", len(sc.Points)))
	spinner.Start()

	l, cacheHit, err := runner.SolveWithCacheInfo(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Placement failed")
		return fmt.Errorf("solve scene: %w", err)
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

	if err := scene.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Placement complete")
	printFile(outputPath)
	printStats(len(l.Labels), l.Stats.Overlaps, cacheHit)
	printNewline()
	printNextStep("Render", "placard render "+outputPath+" --layout")

	return nil
}
