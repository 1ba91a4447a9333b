// Package geom provides the 2D geometry primitives used by the placement
// engine: points, axis-aligned boxes, and circular sectors, together with
// the collision queries the selector and relaxation pass are built on.
//
// All types are plain values. Every query is a pure function of its inputs,
// which keeps the engine deterministic and trivially testable.
package geom

import "math"

// Point is a position in the canvas coordinate space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// DistanceTo returns the Euclidean distance to p.
func (a Point) DistanceTo(p Point) float64 {
	return math.Hypot(p.X-a.X, p.Y-a.Y)
}

// =============================================================================
// Box - Axis-Aligned Rectangle
// =============================================================================

// Box is an axis-aligned rectangle. A well-formed box satisfies
// MinX ≤ MaxX and MinY ≤ MaxY; use [NewBox] or validation in pkg/errors
// to enforce this at construction time.
type Box struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// NewBox returns the box spanning the two corner points, normalizing the
// coordinate order so the result is always well-formed.
func NewBox(x1, y1, x2, y2 float64) Box {
	return Box{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// BoxAt returns a w×h box centered on c.
func BoxAt(c Point, w, h float64) Box {
	return Box{
		MinX: c.X - w/2,
		MinY: c.Y - h/2,
		MaxX: c.X + w/2,
		MaxY: c.Y + h/2,
	}
}

// Center returns the box midpoint.
func (b Box) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Area returns width × height.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Expand grows the box by margin on every side. A negative margin shrinks it;
// the caller is responsible for not shrinking past degeneracy.
func (b Box) Expand(margin float64) Box {
	return Box{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{
		MinX: b.MinX + dx,
		MinY: b.MinY + dy,
		MaxX: b.MaxX + dx,
		MaxY: b.MaxY + dy,
	}
}

// ContainsPoint reports whether p lies inside the box (boundary inclusive).
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// ContainsBox reports whether other lies fully inside b (boundary inclusive).
func (b Box) ContainsBox(other Box) bool {
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY
}

// Overlaps reports whether the gap between the boxes is smaller than margin
// on both axes. With margin 0 a shared edge does not count as overlap: the
// test is strict on both axes.
func (b Box) Overlaps(other Box, margin float64) bool {
	return b.MinX < other.MaxX+margin && other.MinX < b.MaxX+margin &&
		b.MinY < other.MaxY+margin && other.MinY < b.MaxY+margin
}

// Distance returns the separation between two boxes.
//
// When the boxes are disjoint it returns the Euclidean gap (combining the
// per-axis gaps). When they overlap on both axes it returns the negated
// smaller-axis penetration depth, so callers can use the magnitude directly
// as a push strength.
func (b Box) Distance(other Box) float64 {
	dx := axisGap(b.MinX, b.MaxX, other.MinX, other.MaxX)
	dy := axisGap(b.MinY, b.MaxY, other.MinY, other.MaxY)

	switch {
	case dx >= 0 && dy >= 0:
		return math.Hypot(dx, dy)
	case dx >= 0:
		return dx
	case dy >= 0:
		return dy
	default:
		// Overlapping on both axes: report the shallower penetration.
		return math.Max(dx, dy)
	}
}

// axisGap returns the gap between two intervals, negative when they overlap.
func axisGap(aMin, aMax, bMin, bMax float64) float64 {
	if aMax < bMin {
		return bMin - aMax
	}
	if bMax < aMin {
		return aMin - bMax
	}
	return -math.Min(aMax-bMin, bMax-aMin)
}

// Corners returns the four corners in index order: 0 = (MinX, MinY),
// 1 = (MaxX, MinY), 2 = (MaxX, MaxY), 3 = (MinX, MaxY).
func (b Box) Corners() [4]Point {
	return [4]Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

// NearestCorner returns the box corner closest to p and its index
// (see [Box.Corners] for the numbering).
func (b Box) NearestCorner(p Point) (Point, int) {
	corners := b.Corners()
	best := 0
	bestDist := p.DistanceTo(corners[0])
	for i := 1; i < 4; i++ {
		if d := p.DistanceTo(corners[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return corners[best], best
}

// ClosestBoundaryPoint returns the point on the box boundary nearest to p.
// For p inside the box it projects to the nearest edge. Used to derive the
// attachment point for anchor-to-label connector lines.
func (b Box) ClosestBoundaryPoint(p Point) Point {
	cx := math.Min(math.Max(p.X, b.MinX), b.MaxX)
	cy := math.Min(math.Max(p.Y, b.MinY), b.MaxY)
	if cx != p.X || cy != p.Y {
		return Point{X: cx, Y: cy}
	}

	// p is inside: snap to the nearest edge.
	dl := p.X - b.MinX
	dr := b.MaxX - p.X
	db := p.Y - b.MinY
	dt := b.MaxY - p.Y
	m := math.Min(math.Min(dl, dr), math.Min(db, dt))
	switch m {
	case dl:
		return Point{X: b.MinX, Y: p.Y}
	case dr:
		return Point{X: b.MaxX, Y: p.Y}
	case db:
		return Point{X: p.X, Y: b.MinY}
	default:
		return Point{X: p.X, Y: b.MaxY}
	}
}

// ClampTo returns the box translated by the minimum offset that places it
// fully inside bounds. A box wider or taller than bounds is pinned to the
// min edge.
func (b Box) ClampTo(bounds Box) Box {
	dx, dy := 0.0, 0.0
	if b.MinX < bounds.MinX {
		dx = bounds.MinX - b.MinX
	} else if b.MaxX > bounds.MaxX {
		dx = bounds.MaxX - b.MaxX
	}
	if b.MinY < bounds.MinY {
		dy = bounds.MinY - b.MinY
	} else if b.MaxY > bounds.MaxY {
		dy = bounds.MaxY - b.MaxY
	}
	if b.Width() > bounds.Width() {
		dx = bounds.MinX - b.MinX
	}
	if b.Height() > bounds.Height() {
		dy = bounds.MinY - b.MinY
	}
	return b.Translate(dx, dy)
}
