package scene

import (
	"github.com/placardlabs/placard/pkg/errors"
	"github.com/placardlabs/placard/pkg/geom"
)

// =============================================================================
// Scene - Input Serialization
// =============================================================================

// Scene is the canonical input format for a labeling job: the canvas, the
// anchor points to label, and the exclusion sectors to avoid. Used for API
// requests, files on disk, storage, and caching.
//
// The format is human-readable and stable across versions: a scene written
// by one release solves identically under any later release with the same
// layout constants.
type Scene struct {
	Canvas  geom.Box      `json:"canvas" bson:"canvas"`
	Points  []Point       `json:"points" bson:"points"`
	Sectors []geom.Sector `json:"sectors,omitempty" bson:"sectors,omitempty"`
}

// Point is one anchor to be labeled.
type Point struct {
	ID       string  `json:"id" bson:"id"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Kind     string  `json:"kind,omitempty" bson:"kind,omitempty"`   // label size class, empty means default
	Label    string  `json:"label,omitempty" bson:"label,omitempty"` // display text (defaults to ID)
	Priority int     `json:"priority,omitempty" bson:"priority,omitempty"`
}

// DisplayLabel returns the label text if set, otherwise the ID.
func (p *Point) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// Validate checks the scene for structural problems: a degenerate canvas,
// duplicate or malformed point ids, non-finite coordinates, or invalid
// sectors. A valid scene is guaranteed to solve.
func (s *Scene) Validate() error {
	if err := errors.ValidateCanvas(s.Canvas); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "canvas")
	}
	seen := make(map[string]bool, len(s.Points))
	for i, p := range s.Points {
		if err := errors.ValidateID(p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "point %d", i)
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate point id %q", p.ID)
		}
		seen[p.ID] = true
		if err := errors.ValidateFinite("point coordinate", p.X, p.Y); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "point %q", p.ID)
		}
		if p.Kind != "" {
			if err := errors.ValidateKind(p.Kind); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "point %q", p.ID)
			}
		}
	}
	for i, sec := range s.Sectors {
		if err := errors.ValidateSector(sec); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "sector %d", i)
		}
	}
	return nil
}

// =============================================================================
// Layout - Output Serialization
// =============================================================================

// Layout is the solved counterpart of a Scene: one placed label per point,
// plus the aggregate counters of the solve.
type Layout struct {
	Canvas  geom.Box      `json:"canvas" bson:"canvas"`
	Labels  []Label       `json:"labels" bson:"labels"`
	Sectors []geom.Sector `json:"sectors,omitempty" bson:"sectors,omitempty"`
	Stats   Stats         `json:"stats" bson:"stats"`
}

// Label is one placed label box with its connector geometry.
type Label struct {
	ID        string     `json:"id" bson:"id"`
	Kind      string     `json:"kind,omitempty" bson:"kind,omitempty"`
	Text      string     `json:"text,omitempty" bson:"text,omitempty"`
	Priority  int        `json:"priority,omitempty" bson:"priority,omitempty"`
	Box       geom.Box   `json:"box" bson:"box"`
	Direction int        `json:"direction" bson:"direction"` // quantized direction index at selection time
	Anchor    geom.Point `json:"anchor" bson:"anchor"`
	Connector geom.Point `json:"connector" bson:"connector"` // box-boundary end of the anchor connector
}

// Stats summarizes a solve.
type Stats struct {
	Elements   int `json:"elements" bson:"elements"`
	Overlaps   int `json:"overlaps" bson:"overlaps"` // residual overlapping pairs after relaxation
	Iterations int `json:"iterations" bson:"iterations"`
}

// Label returns the placed label with the given id, or nil.
func (l *Layout) Label(id string) *Label {
	for i := range l.Labels {
		if l.Labels[i].ID == id {
			return &l.Labels[i]
		}
	}
	return nil
}
