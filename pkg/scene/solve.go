package scene

import (
	"math"

	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/layout"
)

// Solve runs the full placement pipeline over a scene: register sectors,
// select and place one label per point in input order, then relax. Pass
// iterations <= 0 to use the configured default.
//
// Input order matters: earlier points claim positions first and later
// points route around them. Callers wanting priority ordering sort
// s.Points before solving.
func Solve(s *Scene, cfg *layout.Config, iterations int) (*Layout, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	m, err := layout.New(s.Canvas, cfg)
	if err != nil {
		return nil, err
	}
	for _, sec := range s.Sectors {
		if err := m.AddSector(sec.Center.X, sec.Center.Y, sec.Radius, sec.StartDeg, sec.EndDeg); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Points {
		el, err := m.Place(p.X, p.Y, p.Kind, p.ID)
		if err != nil {
			return nil, err
		}
		el.Priority = p.Priority
	}

	if iterations <= 0 {
		iterations = m.Config().Iterations
	}
	m.Relax(iterations)

	return fromManager(s, m, iterations), nil
}

// fromManager converts the manager's final state back into the
// serialization format, pairing each placed element with its source point.
func fromManager(s *Scene, m *layout.Manager, iterations int) *Layout {
	out := &Layout{
		Canvas:  m.Bounds(),
		Labels:  make([]Label, 0, len(s.Points)),
		Sectors: m.Sectors(),
	}
	for _, p := range s.Points {
		el := m.Element(p.ID)
		if el == nil {
			continue
		}
		_, connector, _ := m.Connector(p.ID)
		out.Labels = append(out.Labels, Label{
			ID:        p.ID,
			Kind:      p.Kind,
			Text:      p.DisplayLabel(),
			Priority:  p.Priority,
			Box:       el.Box,
			Direction: directionOf(el.Anchor, el.Box),
			Anchor:    el.Anchor,
			Connector: connector,
		})
	}
	st := m.Stats()
	out.Stats = Stats{
		Elements:   st.ElementCount,
		Overlaps:   st.OverlapCount,
		Iterations: iterations,
	}
	return out
}

// directionOf recovers the quantized direction index from the bearing of
// the anchor to the box corner nearest it. After relaxation the box may
// have drifted off the grid; the index reflects the nearest grid step.
func directionOf(anchor geom.Point, box geom.Box) int {
	corner, _ := box.NearestCorner(anchor)
	bearing := geom.Bearing(anchor, corner)
	step := 360.0 / layout.DirectionCount
	return int(math.Round(bearing/step)) % layout.DirectionCount
}
