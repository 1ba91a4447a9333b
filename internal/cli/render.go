package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/placardlabs/placard/pkg/pipeline"
	"github.com/placardlabs/placard/pkg/scene"
)

// renderCommand creates the render command for producing image output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		configPath string
		fromLayout bool
		noCache    bool
		refresh    bool
		iterations int
		scale      float64
		pngWidth   int
	)

	cmd := &cobra.Command{
		Use:   "render [scene.json]",
		Short: "Render a scene or solved layout to SVG, PNG, or PDF",
		Long: `Render a scene or solved layout to image output.

By default the input is a scene.json file: the command solves it and
renders the result. With --layout, the input is a layout.json file
produced by 'place' and the solve stage is skipped.

Formats: svg (default), png, pdf, dot, json. Multiple formats can be
requested comma-separated; each is written as <base>.<format>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Iterations: iterations,
				Refresh:    refresh,
				Formats:    parseFormats(formatsStr),
				Scale:      scale,
				PNGWidth:   pngWidth,
				Logger:     c.Logger,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			cfg, err := loadLayoutConfig(configPath)
			if err != nil {
				return err
			}
			opts.LayoutConfig = cfg
			return c.runRender(cmd.Context(), args[0], output, opts, fromLayout, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with placement constants")
	cmd.Flags().BoolVar(&fromLayout, "layout", false, "treat input as a solved layout.json and skip solving")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached results exist")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "relaxation iterations (0 uses the configured default)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per canvas unit for SVG output")
	cmd.Flags().IntVar(&pngWidth, "png-width", 0, "raster width for PNG output")

	return cmd
}

// runRender solves (unless the input is already a layout) and writes one
// file per requested format.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, fromLayout, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var (
		l        *scene.Layout
		cacheHit bool
	)
	if fromLayout {
		l, err = scene.ReadLayoutFile(input)
		if err != nil {
			return fmt.Errorf("load layout %s: %w", input, err)
		}
	} else {
		sc, err := scene.ReadSceneFile(input)
		if err != nil {
			return fmt.Errorf("load scene %s: %w", input, err)
		}

		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d labels...", len(sc.Points)))
		spinner.Start()
		l, cacheHit, err = runner.SolveWithCacheInfo(ctx, sc, opts)
		if err != nil {
			spinner.StopWithError("Placement failed")
			return fmt.Errorf("solve scene: %w", err)
		}
		spinner.Stop()
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	artifacts, err := runner.RenderArtifacts(ctx, l, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	base := renderBasePath(output, input)
	for _, format := range opts.Formats {
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Render complete")
	printStats(len(l.Labels), l.Stats.Overlaps, cacheHit)

	return nil
}

// renderBasePath derives the base output path from the output and input
// paths. A known format extension on the output path is stripped so that
// multiple formats don't stack extensions.
func renderBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
