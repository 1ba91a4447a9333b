// Package pipeline provides the core placement pipeline for Placard.
//
// This package implements the complete solve → render pipeline used by the
// CLI and the server. By centralizing this logic, both entry points share
// one caching strategy and behave identically for the same inputs.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Solve: Compute label positions for a scene (selection plus relaxation)
//  2. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage result is cached under a content hash of its inputs.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, sc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Solve only
//	l, err := runner.Solve(ctx, sc, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/placardlabs/placard/pkg/cache"
	"github.com/placardlabs/placard/pkg/layout"
	"github.com/placardlabs/placard/pkg/scene"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the placement pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Solve options
	Iterations int  `json:"iterations,omitempty"` // relaxation budget, 0 for the configured default
	Refresh    bool `json:"refresh,omitempty"`    // bypass the cache and recompute

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`     // pixels per canvas unit for SVG
	PNGWidth int      `json:"png_width,omitempty"` // raster width for PNG output

	// Runtime options (not serialized)
	LayoutConfig *layout.Config `json:"-"`
	Logger       *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SceneHash is the content hash of the input scene.
	SceneHash string

	// Layout is the solved layout.
	Layout *scene.Layout

	// LayoutHash is the content hash of the solved layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LabelCount int
	Overlaps   int
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solved layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
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
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks and defaults the fields the solve stage uses.
func (o *Options) ValidateForSolve() error {
	if o.LayoutConfig == nil {
		o.LayoutConfig = layout.DefaultConfig()
	}
	if err := o.LayoutConfig.Validate(); err != nil {
		return err
	}
	if o.Iterations <= 0 {
		o.Iterations = o.LayoutConfig.Iterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ConfigHash returns the content hash of the layout constants in effect.
// Two runs with the same scene but different constants must cache apart.
func (o *Options) ConfigHash() string {
	cfg := o.LayoutConfig
	if cfg == nil {
		cfg = layout.DefaultConfig()
	}
	data, _ := json.Marshal(cfg)
	return cache.Hash(data)
}

// LayoutKeyOpts returns cache key options for the solve stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ConfigHash: o.ConfigHash(),
		Iterations: o.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for rendered artifacts.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	width := 0
	if format == FormatPNG {
		width = o.PNGWidth
	}
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  width,
		Scale:  o.Scale,
	}
}
