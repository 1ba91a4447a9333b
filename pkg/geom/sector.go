package geom

import "math"

// centerEpsilon is the radius below which a query point is treated as
// coincident with a sector center, where the outward direction is undefined.
const centerEpsilon = 1e-9

// Sector is a circular-sector exclusion zone: the pie slice of the disc
// around Center with the given Radius, swept from StartDeg to EndDeg
// counterclockwise. Angles are in degrees and reduced mod 360; the arc may
// wrap past 0° (e.g. StartDeg 350, EndDeg 20).
type Sector struct {
	Center   Point   `json:"center" bson:"center"`
	Radius   float64 `json:"radius" bson:"radius"`
	StartDeg float64 `json:"start_deg" bson:"start_deg"`
	EndDeg   float64 `json:"end_deg" bson:"end_deg"`
}

// FullCircle reports whether the sector sweeps the whole disc. The ends
// normalize to the same angle but are written differently (e.g. 0..360);
// StartDeg == EndDeg is the degenerate zero-width wedge instead.
func (s Sector) FullCircle() bool {
	return NormDeg(s.EndDeg-s.StartDeg) == 0 && s.StartDeg != s.EndDeg
}

// Contains reports whether p lies inside the sector. Points beyond Radius
// are outside; the exact center is always inside (its bearing is undefined,
// so no arc test can exclude it). A full-circle sector contains every point
// of its disc.
func (s Sector) Contains(p Point) bool {
	d := s.Center.DistanceTo(p)
	if d > s.Radius {
		return false
	}
	if d < centerEpsilon || s.FullCircle() {
		return true
	}
	return angleInArc(Bearing(s.Center, p), s.StartDeg, s.EndDeg)
}

// RadialDir returns the unit vector pointing from the sector center toward
// p. ok is false when p coincides with the center, where the outward
// direction is undefined; callers must resolve that case deterministically
// themselves.
func (s Sector) RadialDir(p Point) (dx, dy float64, ok bool) {
	vx := p.X - s.Center.X
	vy := p.Y - s.Center.Y
	d := math.Hypot(vx, vy)
	if d < centerEpsilon {
		return 0, 0, false
	}
	return vx / d, vy / d, true
}

// Bearing returns the direction from one point toward another, in degrees
// normalized to [0, 360), with 0° along +X and angles increasing
// counterclockwise.
func Bearing(from, to Point) float64 {
	return NormDeg(math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi)
}

// NormDeg reduces an angle in degrees to [0, 360).
func NormDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// angleInArc reports whether bearing deg lies on the arc from start to end
// (all normalized to [0, 360), boundary inclusive). When start > end the
// arc wraps through 0°.
func angleInArc(deg, start, end float64) bool {
	deg = NormDeg(deg)
	start = NormDeg(start)
	end = NormDeg(end)
	if start <= end {
		return deg >= start && deg <= end
	}
	return deg >= start || deg <= end
}

// BoxIntersectsSector is a conservative test for a box touching a sector:
// it samples only the box center and its four corners. It can miss a true
// intersection where a box edge crosses the sector boundary without any
// sampled point falling inside. That approximation is intentional and
// load-bearing: candidate filtering is tuned around it, so do not replace
// it with an exact test without revisiting the selector.
func BoxIntersectsSector(b Box, s Sector) bool {
	if s.Contains(b.Center()) {
		return true
	}
	for _, c := range b.Corners() {
		if s.Contains(c) {
			return true
		}
	}
	return false
}
