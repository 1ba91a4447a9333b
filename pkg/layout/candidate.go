package layout

import (
	"math"

	"github.com/placardlabs/placard/pkg/geom"
)

// DirectionCount is the number of quantized placement directions.
const DirectionCount = 12

// directionStepDeg is the angular spacing between adjacent directions.
const directionStepDeg = 360.0 / DirectionCount

// axisEpsilon decides when a direction component counts as axis-aligned.
const axisEpsilon = 1e-9

// Candidate is one direction-quantized placement option for a label box.
// Dir is the direction index: Dir*30° is the bearing from the anchor to the
// box corner nearest to it.
type Candidate struct {
	Box geom.Box
	Dir int
}

// candidates generates the twelve placement candidates for a w×h label
// around anchor. For each direction the box corner nearest the anchor is
// placed exactly at distance dist along the direction's bearing, and the box
// extends into the outward quadrant, so the placed corner stays the nearest
// corner and lies exactly on the bearing.
//
// All twelve candidates sit on this single ring, so with the default config
// (dist well under MaxDistance) the selector's distance filter never fires;
// it still guards configs where LabelGap exceeds MaxDistance.
func candidates(anchor geom.Point, w, h, dist float64) []Candidate {
	out := make([]Candidate, 0, DirectionCount)
	for dir := 0; dir < DirectionCount; dir++ {
		out = append(out, Candidate{
			Box: candidateBox(anchor, dir, w, h, dist),
			Dir: dir,
		})
	}
	return out
}

// candidateBox computes the box for one direction index. Axis-aligned
// bearings extend the box toward the positive side of the orthogonal axis;
// the choice is arbitrary but fixed, keeping generation deterministic.
func candidateBox(anchor geom.Point, dir int, w, h, dist float64) geom.Box {
	rad := float64(dir) * directionStepDeg * math.Pi / 180
	ux, uy := math.Cos(rad), math.Sin(rad)
	corner := geom.Point{X: anchor.X + dist*ux, Y: anchor.Y + dist*uy}

	minX := corner.X
	if ux < -axisEpsilon {
		minX = corner.X - w
	}
	minY := corner.Y
	if uy < -axisEpsilon {
		minY = corner.Y - h
	}
	return geom.Box{MinX: minX, MinY: minY, MaxX: minX + w, MaxY: minY + h}
}

// NearestCornerDistance returns the distance from anchor to the closest
// corner of b, along with that corner's index (see [geom.Box.Corners]).
// This is the quantity the maximum-distance constraint is defined on.
func NearestCornerDistance(b geom.Box, anchor geom.Point) (float64, int) {
	c, idx := b.NearestCorner(anchor)
	return anchor.DistanceTo(c), idx
}

// OnDirectionGrid reports whether the bearing from anchor to p lies within
// tolDeg of a multiple of 30°. Generated candidates satisfy this by
// construction; the check exists to validate candidate construction, not to
// drive runtime selection.
func OnDirectionGrid(anchor, p geom.Point, tolDeg float64) bool {
	bearing := geom.Bearing(anchor, p)
	rem := math.Mod(bearing, directionStepDeg)
	return rem <= tolDeg || directionStepDeg-rem <= tolDeg
}
