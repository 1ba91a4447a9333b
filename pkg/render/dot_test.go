package render

import (
	"strings"
	"testing"

	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/scene"
)

func TestOverlapDOT(t *testing.T) {
	l := &scene.Layout{
		Canvas: geom.Box{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Labels: []scene.Label{
			{ID: "a", Text: "A", Box: geom.BoxAt(geom.Point{X: 0, Y: 0}, 2, 1)},
			{ID: "b", Text: "B", Box: geom.BoxAt(geom.Point{X: 0.5, Y: 0}, 2, 1)},
			{ID: "c", Text: "C", Box: geom.BoxAt(geom.Point{X: 6, Y: 6}, 2, 1)},
		},
	}

	dot := OverlapDOT(l)

	if !strings.HasPrefix(dot, "graph overlaps {") {
		t.Error("DOT output missing graph header")
	}
	for _, id := range []string{`"a"`, `"b"`, `"c"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("DOT output missing node %s", id)
		}
	}
	if !strings.Contains(dot, `"a" -- "b";`) {
		t.Error("DOT output missing the a--b overlap edge")
	}
	if strings.Contains(dot, `"c" --`) || strings.Contains(dot, `-- "c"`) {
		t.Error("DOT output has an edge for the non-overlapping label")
	}
	// Overlapping labels are highlighted, clear ones keep the default fill.
	if got := strings.Count(dot, `fillcolor="#f2b8b5"`); got != 2 {
		t.Errorf("highlighted %d nodes, want 2", got)
	}
}

func TestOverlapDOTCleanLayout(t *testing.T) {
	l := &scene.Layout{
		Canvas: geom.Box{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Labels: []scene.Label{
			{ID: "a", Text: "A", Box: geom.BoxAt(geom.Point{X: -5, Y: 0}, 2, 1)},
			{ID: "b", Text: "B", Box: geom.BoxAt(geom.Point{X: 5, Y: 0}, 2, 1)},
		},
	}

	dot := OverlapDOT(l)
	if strings.Contains(dot, "--") {
		t.Error("clean layout should produce no overlap edges")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="134pt" height="44pt" viewBox="0.00 0.00 133.78 44.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 133.78 44.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="134" height="44"`) {
		t.Errorf("pixel size not rewritten: %s", out)
	}

	// SVG without a viewBox passes through untouched.
	plain := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	if got := string(normalizeViewBox(plain)); got != string(plain) {
		t.Errorf("plain svg modified: %s", got)
	}
}
