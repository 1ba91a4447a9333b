package scene

import (
	"testing"

	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/layout"
)

func TestSolve(t *testing.T) {
	s := validScene()
	got, err := Solve(s, nil, 0)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}

	if len(got.Labels) != len(s.Points) {
		t.Fatalf("solved %d labels, want %d", len(got.Labels), len(s.Points))
	}
	if got.Stats.Elements != len(s.Points) {
		t.Errorf("Stats.Elements = %d, want %d", got.Stats.Elements, len(s.Points))
	}
	if got.Stats.Iterations != layout.DefaultIterations {
		t.Errorf("Stats.Iterations = %d, want default %d", got.Stats.Iterations, layout.DefaultIterations)
	}

	for _, l := range got.Labels {
		if l.Direction < 0 || l.Direction >= layout.DirectionCount {
			t.Errorf("label %s: direction %d out of range", l.ID, l.Direction)
		}
		if !got.Canvas.ContainsBox(l.Box) {
			t.Errorf("label %s: box %+v escapes canvas", l.ID, l.Box)
		}
		if !l.Box.ContainsPoint(l.Connector) {
			t.Errorf("label %s: connector end %+v off the box boundary", l.ID, l.Connector)
		}
	}

	// The first point carries display text, the second falls back to its id.
	if got.Labels[0].Text != "Origin" {
		t.Errorf("label text = %q, want %q", got.Labels[0].Text, "Origin")
	}
	if got.Labels[1].Text != "n2" {
		t.Errorf("label text = %q, want id fallback %q", got.Labels[1].Text, "n2")
	}
}

func TestSolveDeterministic(t *testing.T) {
	a, err := Solve(validScene(), nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Solve(validScene(), nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Errorf("label %d differs between runs: %+v vs %+v", i, a.Labels[i], b.Labels[i])
		}
	}
}

func TestSolveRejectsInvalidScene(t *testing.T) {
	s := validScene()
	s.Points[0].ID = ""
	if _, err := Solve(s, nil, 0); err == nil {
		t.Error("Solve() accepted an invalid scene")
	}
}

func TestSolveExplicitIterations(t *testing.T) {
	got, err := Solve(validScene(), nil, 12)
	if err != nil {
		t.Fatal(err)
	}
	if got.Stats.Iterations != 12 {
		t.Errorf("Stats.Iterations = %d, want 12", got.Stats.Iterations)
	}
}

func TestSolveCrowdedSceneSeparates(t *testing.T) {
	s := &Scene{Canvas: geom.Box{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}}
	// Four anchors bunched together so candidate selection alone cannot
	// keep every label clear.
	coords := []geom.Point{{X: 0, Y: 0}, {X: 0.3, Y: 0}, {X: 0, Y: 0.3}, {X: 0.3, Y: 0.3}}
	for i, c := range coords {
		s.Points = append(s.Points, Point{ID: string(rune('a' + i)), X: c.X, Y: c.Y})
	}

	got, err := Solve(s, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Labels) != 4 {
		t.Fatalf("solved %d labels, want 4", len(got.Labels))
	}
	for _, l := range got.Labels {
		if !got.Canvas.ContainsBox(l.Box) {
			t.Errorf("label %s escaped the canvas after relaxation", l.ID)
		}
	}
}
