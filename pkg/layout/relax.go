package layout

import (
	"hash/fnv"
	"math"

	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/observability"
)

// coincidentEpsilon decides when two box centers count as coincident, or a
// point as sitting on a sector center, leaving the push direction undefined.
const coincidentEpsilon = 1e-9

// Relax runs the force-directed relaxation pass: a fixed-count iterative
// repulsion simulation over all registered elements. Pass 0 to use the
// configured default iteration count.
//
// Per iteration, every overlapping pair repels its movable members
// proportionally to the penetration depth along the vector between box
// centers; sectors push contained movable elements radially outward with
// constant magnitude; and every movable element is clamped fully inside the
// canvas bounds. Static elements repel but never move.
//
// Relax always completes its iteration budget; there is no convergence
// check, no early exit, and no failure state. Residual overlap, if any,
// shows up as a nonzero OverlapCount in [Manager.Stats]. Cost is
// O(iterations × n²), acceptable at the expected scale of tens of elements.
func (m *Manager) Relax(iterations int) {
	if iterations <= 0 {
		iterations = m.cfg.Iterations
	}
	observability.Layout().OnRelaxStart(len(m.elements), iterations)

	n := len(m.elements)
	dx := make([]float64, n)
	dy := make([]float64, n)

	for it := 0; it < iterations; it++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		m.accumulatePairForces(dx, dy)
		m.accumulateSectorForces(dx, dy)

		for i, el := range m.elements {
			if !el.moves() {
				continue
			}
			el.Box = el.Box.Translate(dx[i], dy[i]).ClampTo(m.bounds)
		}
	}

	observability.Layout().OnRelaxComplete(n, iterations, m.Stats().OverlapCount)
}

// accumulatePairForces adds the box-to-box repulsion for every overlapping
// unordered pair. When both members move they split the push; when only one
// moves it takes the full push.
func (m *Manager) accumulatePairForces(dx, dy []float64) {
	for i := 0; i < len(m.elements); i++ {
		for j := i + 1; j < len(m.elements); j++ {
			a, b := m.elements[i], m.elements[j]
			if !a.moves() && !b.moves() {
				continue
			}
			depth := -a.Box.Distance(b.Box)
			if depth <= 0 {
				continue
			}

			push := depth * m.cfg.BoxRepulsion
			if a.moves() && b.moves() {
				push /= 2
			}

			ux, uy, ok := unitBetween(a.Box.Center(), b.Box.Center())
			if ok {
				if a.moves() {
					dx[i] -= ux * push
					dy[i] -= uy * push
				}
				if b.moves() {
					dx[j] += ux * push
					dy[j] += uy * push
				}
				continue
			}

			// Coincident centers: each movable member escapes along the
			// direction derived from its own id, so distinct ids diverge
			// instead of shadowing each other.
			if a.moves() {
				ax, ay := bucketDirection(a.ID)
				dx[i] += ax * push
				dy[i] += ay * push
			}
			if b.moves() {
				bx, by := bucketDirection(b.ID)
				dx[j] += bx * push
				dy[j] += by * push
			}
		}
	}
}

// accumulateSectorForces adds the constant-magnitude radial push for every
// movable element whose box center sits inside a sector.
func (m *Manager) accumulateSectorForces(dx, dy []float64) {
	for i, el := range m.elements {
		if !el.moves() {
			continue
		}
		center := el.Box.Center()
		for _, s := range m.sectors {
			if !s.Contains(center) {
				continue
			}
			ux, uy, ok := s.RadialDir(center)
			if !ok {
				// On the exact sector center the outward direction is
				// undefined; fall back to the id-derived compass bucket.
				ux, uy = bucketDirection(el.ID)
			}
			dx[i] += ux * m.cfg.SectorRepulsion
			dy[i] += uy * m.cfg.SectorRepulsion
		}
	}
}

// unitBetween returns the unit vector from a toward b, with ok=false when
// the points are within coincidentEpsilon of each other.
func unitBetween(a, b geom.Point) (ux, uy float64, ok bool) {
	vx := b.X - a.X
	vy := b.Y - a.Y
	d := math.Hypot(vx, vy)
	if d < coincidentEpsilon {
		return 0, 0, false
	}
	return vx / d, vy / d, true
}

// DirectionBucket maps an element id to one of the twelve compass buckets
// with a seed-free FNV-1a hash, so the same id always resolves to the same
// escape direction across processes while distinct ids spread over the
// buckets. Go's built-in map hashing is randomized per process and must not
// be used here.
func DirectionBucket(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % DirectionCount)
}

// bucketDirection returns the unit vector of an id's compass bucket.
func bucketDirection(id string) (ux, uy float64) {
	rad := float64(DirectionBucket(id)) * directionStepDeg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
