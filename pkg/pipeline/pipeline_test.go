package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/placardlabs/placard/pkg/cache"
	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/layout"
	"github.com/placardlabs/placard/pkg/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Canvas: geom.Box{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Points: []scene.Point{
			{ID: "n1", X: 0, Y: 0, Label: "Origin"},
			{ID: "n2", X: 4, Y: -3},
		},
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), testScene(), Options{
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.LabelCount != 2 {
		t.Errorf("LabelCount = %d, want 2", result.Stats.LabelCount)
	}
	if result.SceneHash == "" || result.LayoutHash == "" {
		t.Error("content hashes not populated")
	}
	if result.CacheInfo.SolveHit || result.CacheInfo.RenderHit {
		t.Error("first run with a null cache reported cache hits")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.HasPrefix(string(svg), "<svg") {
		t.Error("svg artifact missing or malformed")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("json artifact missing")
	}
	dot, ok := result.Artifacts[FormatDOT]
	if !ok || !strings.HasPrefix(string(dot), "graph overlaps {") {
		t.Error("dot artifact missing or malformed")
	}
}

func TestExecuteCachesStages(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, testScene(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.SolveHit || first.CacheInfo.RenderHit {
		t.Error("first run reported cache hits")
	}

	second, err := r.Execute(ctx, testScene(), Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.SolveHit {
		t.Error("second run missed the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from the original")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Execute(ctx, testScene(), Options{Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}

	refreshed, err := r.Execute(ctx, testScene(), Options{Formats: []string{FormatSVG}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.SolveHit || refreshed.CacheInfo.RenderHit {
		t.Error("refresh run reported cache hits")
	}
}

func TestExecuteRejectsBadFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), testScene(), Options{Formats: []string{"gif"}})
	if err == nil {
		t.Error("Execute() accepted an unsupported format")
	}
}

func TestExecuteRejectsInvalidScene(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	sc := testScene()
	sc.Points[1].ID = sc.Points[0].ID
	if _, err := r.Execute(context.Background(), sc, Options{}); err == nil {
		t.Error("Execute() accepted a scene with duplicate ids")
	}
}

func TestConfigHashSeparatesConstants(t *testing.T) {
	a := Options{}
	if err := a.ValidateForSolve(); err != nil {
		t.Fatal(err)
	}

	cfg := layout.DefaultConfig()
	cfg.MaxDistance = 5
	b := Options{LayoutConfig: cfg}
	if err := b.ValidateForSolve(); err != nil {
		t.Fatal(err)
	}

	if a.ConfigHash() == b.ConfigHash() {
		t.Error("different layout constants produced the same config hash")
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if o.LayoutConfig == nil {
		t.Error("LayoutConfig not defaulted")
	}
	if o.Iterations != layout.DefaultIterations {
		t.Errorf("Iterations = %d, want %d", o.Iterations, layout.DefaultIterations)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Logger == nil {
		t.Error("Logger not defaulted")
	}

	// Idempotent
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Errorf("repeat ValidateAndSetDefaults() error: %v", err)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%s) = %v, want nil", f, err)
		}
	}
	if err := ValidateFormat("bmp"); err == nil {
		t.Error("ValidateFormat(bmp) = nil, want error")
	}
}
