package layout

import (
	"github.com/google/uuid"

	"github.com/placardlabs/placard/pkg/errors"
	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/observability"
)

// Manager owns the element and sector registries, the canvas bounds, and
// the position cache. It is the public façade over the two engine stages:
// candidate selection and force relaxation.
//
// A Manager is single-threaded by contract. The position cache keys on the
// inputs that affect a selection (anchor and id); the Manager does not
// detect sector or anchor changes on its own; callers invalidate the cache
// explicitly or build a fresh Manager per computation cycle.
type Manager struct {
	cfg      *Config
	bounds   geom.Box
	elements []*Element
	sectors  []geom.Sector
	cache    map[cacheKey]geom.Point
}

// cacheKey identifies one cached selection: the anchor, the element id and
// the kind. Kind is part of the key because it determines the box size, so
// re-querying an id under another kind must not reuse the old center.
type cacheKey struct {
	X, Y float64
	ID   string
	Kind string
}

// Stats are the aggregate counters exposed for inspection. OverlapCount is
// informational: a nonzero value after relaxation means residual overlap,
// not an error.
type Stats struct {
	ElementCount int `json:"element_count" bson:"element_count"`
	OverlapCount int `json:"overlap_count" bson:"overlap_count"`
	CacheSize    int `json:"cache_size" bson:"cache_size"`
}

// New creates a Manager for the given canvas bounds. A nil cfg uses
// [DefaultConfig]. The bounds must be a valid box with positive extent.
func New(bounds geom.Box, cfg *Config) (*Manager, error) {
	if err := errors.ValidateCanvas(bounds); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		cfg:    cfg,
		bounds: bounds,
		cache:  make(map[cacheKey]geom.Point),
	}, nil
}

// Bounds returns the canvas bounds.
func (m *Manager) Bounds() geom.Box { return m.bounds }

// Config returns the layout constants the Manager was built with.
func (m *Manager) Config() *Config { return m.cfg }

// AddSector registers a circular-sector exclusion zone. Registering a
// sector invalidates the position cache: cached selections were computed
// against the old obstacle set.
func (m *Manager) AddSector(cx, cy, radius, startDeg, endDeg float64) error {
	s := geom.Sector{
		Center:   geom.Point{X: cx, Y: cy},
		Radius:   radius,
		StartDeg: startDeg,
		EndDeg:   endDeg,
	}
	if err := errors.ValidateSector(s); err != nil {
		return err
	}
	m.sectors = append(m.sectors, s)
	m.InvalidateCache()
	return nil
}

// Sectors returns the registered exclusion sectors.
func (m *Manager) Sectors() []geom.Sector { return m.sectors }

// AddElement registers an element. An empty ID is replaced with a generated
// UUID; everything else is validated and rejected with a descriptive error
// before it can enter the simulation.
func (m *Manager) AddElement(el Element) error {
	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	if err := el.validate(); err != nil {
		return err
	}
	m.elements = append(m.elements, &el)
	return nil
}

// Elements returns the registered elements in registration order. The
// returned slice shares storage with the Manager; treat it as read-only.
func (m *Manager) Elements() []*Element { return m.elements }

// Element returns the registered element with the given id, or nil.
func (m *Manager) Element(id string) *Element {
	for _, el := range m.elements {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// Connector returns the endpoints of the anchor-to-label connector line for
// an element: the anchor itself and the point on the label-box boundary
// closest to it. ok is false for unknown ids.
func (m *Manager) Connector(id string) (from, to geom.Point, ok bool) {
	el := m.Element(id)
	if el == nil {
		return geom.Point{}, geom.Point{}, false
	}
	return el.Anchor, el.Box.ClosestBoundaryPoint(el.Anchor), true
}

// InvalidateCache drops every cached selection.
func (m *Manager) InvalidateCache() {
	m.cache = make(map[cacheKey]geom.Point)
}

// Stats returns the aggregate counters: registered elements, residual
// pairwise overlaps, and cached selections.
func (m *Manager) Stats() Stats {
	overlaps := 0
	for i := 0; i < len(m.elements); i++ {
		for j := i + 1; j < len(m.elements); j++ {
			if m.elements[i].Box.Overlaps(m.elements[j].Box, 0) {
				overlaps++
			}
		}
	}
	return Stats{
		ElementCount: len(m.elements),
		OverlapCount: overlaps,
		CacheSize:    len(m.cache),
	}
}

// Select computes the label-box center for an anchor. The result is cached
// on (anchor, id, kind): repeated calls with an unchanged obstacle set
// return the identical point.
//
// Candidates are ranked by ascending direction index, 0 = east and
// counterclockwise from there; the first candidate that clears every filter
// wins. If every candidate is rejected, Select falls back to the candidate
// with the smallest total obstacle and boundary penetration; a placement
// is always produced for a finite anchor, possibly an overlapping one.
func (m *Manager) Select(x, y float64, kind, id string) (geom.Point, error) {
	if err := errors.ValidateFinite("anchor coordinate", x, y); err != nil {
		return geom.Point{}, err
	}

	key := cacheKey{X: x, Y: y, ID: id, Kind: kind}
	if p, ok := m.cache[key]; ok {
		observability.Layout().OnSelectComplete(id, true)
		return p, nil
	}
	observability.Layout().OnSelectStart(id)

	anchor := geom.Point{X: x, Y: y}
	size := m.cfg.SizeFor(kind)
	cands := candidates(anchor, size.Width, size.Height, m.cfg.LabelGap)

	chosen, found := m.firstSurvivor(anchor, cands)
	if !found {
		chosen = m.leastPenetrating(cands)
	}

	center := chosen.Box.Center()
	m.cache[key] = center
	observability.Layout().OnSelectComplete(id, false)
	return center, nil
}

// Place is the registration convenience used by callers that drive the
// engine point by point: it selects a position for the anchor and registers
// a movable element of the matching kind and size there.
func (m *Manager) Place(x, y float64, kind, id string) (*Element, error) {
	center, err := m.Select(x, y, kind, id)
	if err != nil {
		return nil, err
	}
	size := m.cfg.SizeFor(kind)
	el := Element{
		ID:      id,
		Kind:    kind,
		Box:     geom.BoxAt(center, size.Width, size.Height),
		Anchor:  geom.Point{X: x, Y: y},
		Movable: true,
	}
	if err := m.AddElement(el); err != nil {
		return nil, err
	}
	return m.elements[len(m.elements)-1], nil
}

// firstSurvivor scans candidates in direction-index order and returns the
// first one that passes every filter.
func (m *Manager) firstSurvivor(anchor geom.Point, cands []Candidate) (Candidate, bool) {
	for _, c := range cands {
		if m.admissible(anchor, c.Box) {
			return c, true
		}
	}
	return Candidate{}, false
}

// admissible applies the four rejection filters from the selection rules.
func (m *Manager) admissible(anchor geom.Point, box geom.Box) bool {
	if d, _ := NearestCornerDistance(box, anchor); d > m.cfg.MaxDistance {
		return false
	}
	if !m.bounds.ContainsBox(box) {
		return false
	}
	for _, s := range m.sectors {
		if geom.BoxIntersectsSector(box, s) {
			return false
		}
	}
	for _, el := range m.elements {
		if box.Overlaps(el.Box, m.cfg.Spacing) {
			return false
		}
	}
	return true
}

// leastPenetrating returns the candidate with the smallest total penetration
// into obstacles and past the canvas boundary. Ties keep the lower
// direction index because the scan is in index order with a strict less.
func (m *Manager) leastPenetrating(cands []Candidate) Candidate {
	best := cands[0]
	bestScore := m.penetration(cands[0].Box)
	for _, c := range cands[1:] {
		if score := m.penetration(c.Box); score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// penetration sums how deeply a box intrudes into registered elements,
// sectors, and the area outside the canvas bounds.
func (m *Manager) penetration(box geom.Box) float64 {
	total := 0.0
	for _, el := range m.elements {
		if d := box.Distance(el.Box); d < 0 {
			total += -d
		}
	}
	for _, s := range m.sectors {
		if geom.BoxIntersectsSector(box, s) {
			// Depth of the box center inside the sector disc, floored at a
			// small constant so grazing intersections still cost something.
			depth := s.Radius - s.Center.DistanceTo(box.Center())
			if depth < 0.1 {
				depth = 0.1
			}
			total += depth
		}
	}
	total += boundaryExcess(box, m.bounds)
	return total
}

// boundaryExcess sums the overhang of box past each side of bounds.
func boundaryExcess(box, bounds geom.Box) float64 {
	excess := 0.0
	if d := bounds.MinX - box.MinX; d > 0 {
		excess += d
	}
	if d := box.MaxX - bounds.MaxX; d > 0 {
		excess += d
	}
	if d := bounds.MinY - box.MinY; d > 0 {
		excess += d
	}
	if d := box.MaxY - bounds.MaxY; d > 0 {
		excess += d
	}
	return excess
}
