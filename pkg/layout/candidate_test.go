package layout

import (
	"math"
	"testing"

	"github.com/placardlabs/placard/pkg/geom"
)

func TestCandidatesRingDistance(t *testing.T) {
	anchors := []geom.Point{
		{X: 0, Y: 0},
		{X: 3.2, Y: -1.7},
		{X: -9, Y: 9},
	}
	for _, anchor := range anchors {
		cands := candidates(anchor, 2.0, 0.8, 0.35)
		if len(cands) != DirectionCount {
			t.Fatalf("candidates returned %d entries, want %d", len(cands), DirectionCount)
		}
		for _, c := range cands {
			d, _ := NearestCornerDistance(c.Box, anchor)
			if math.Abs(d-0.35) > 1e-9 {
				t.Errorf("anchor %+v dir %d: nearest corner distance = %v, want 0.35", anchor, c.Dir, d)
			}
		}
	}
}

func TestCandidatesOnDirectionGrid(t *testing.T) {
	anchor := geom.Point{X: 1.5, Y: -2.5}
	for _, c := range candidates(anchor, 2.4, 1.0, 0.35) {
		corner, _ := c.Box.NearestCorner(anchor)
		if !OnDirectionGrid(anchor, corner, 1e-6) {
			t.Errorf("dir %d: nearest corner %+v off the 30-degree grid (bearing %v)",
				c.Dir, corner, geom.Bearing(anchor, corner))
		}
	}
}

func TestCandidateBoxDimensions(t *testing.T) {
	anchor := geom.Point{X: 0, Y: 0}
	for _, c := range candidates(anchor, 3.0, 1.2, 0.5) {
		if math.Abs(c.Box.Width()-3.0) > 1e-12 || math.Abs(c.Box.Height()-1.2) > 1e-12 {
			t.Errorf("dir %d: box is %vx%v, want 3x1.2", c.Dir, c.Box.Width(), c.Box.Height())
		}
	}
}

func TestCandidateDirectionBearing(t *testing.T) {
	// The placed corner's bearing from the anchor must match the direction
	// index times the step angle.
	anchor := geom.Point{X: -4, Y: 2}
	for _, c := range candidates(anchor, 2.0, 0.8, 0.35) {
		corner, _ := c.Box.NearestCorner(anchor)
		want := float64(c.Dir) * directionStepDeg
		got := geom.Bearing(anchor, corner)
		diff := math.Abs(got - want)
		if diff > 180 {
			diff = 360 - diff
		}
		if diff > 1e-6 {
			t.Errorf("dir %d: bearing = %v, want %v", c.Dir, got, want)
		}
	}
}

func TestOnDirectionGrid(t *testing.T) {
	anchor := geom.Point{X: 0, Y: 0}
	tests := []struct {
		name   string
		p      geom.Point
		tolDeg float64
		want   bool
	}{
		{"East", geom.Point{X: 1, Y: 0}, 0.5, true},
		{"North", geom.Point{X: 0, Y: 3}, 0.5, true},
		{"ThirtyDegrees", geom.Point{X: math.Cos(math.Pi / 6), Y: math.Sin(math.Pi / 6)}, 0.5, true},
		{"FifteenDegrees", geom.Point{X: math.Cos(math.Pi / 12), Y: math.Sin(math.Pi / 12)}, 1, false},
		{"NearGridWithinTolerance", geom.Point{X: math.Cos(29.5 * math.Pi / 180), Y: math.Sin(29.5 * math.Pi / 180)}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OnDirectionGrid(anchor, tt.p, tt.tolDeg); got != tt.want {
				t.Errorf("OnDirectionGrid(%+v, tol %v) = %v, want %v", tt.p, tt.tolDeg, got, tt.want)
			}
		})
	}
}
