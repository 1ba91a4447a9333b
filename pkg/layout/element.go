package layout

import (
	"github.com/placardlabs/placard/pkg/errors"
	"github.com/placardlabs/placard/pkg/geom"
)

// Element is one registered annotation: a label box tied to an anchor point.
//
// Static elements never move and act purely as obstacles for both stages.
// Non-static elements move during relaxation only when Movable is set.
// The caller creates one Element per visible annotation, registers it, and
// discards it when the underlying data changes.
type Element struct {
	// ID is a stable identity used for position caching and for
	// deterministic tie-breaking when geometry alone is ambiguous.
	ID string

	// Kind selects the label-box size from the Config size table.
	Kind string

	// Box is the current label box. The relaxation pass updates it in place.
	Box geom.Box

	// Anchor is the data point the label is attached to. It never moves.
	Anchor geom.Point

	// Priority orders elements when callers render them; the engine carries
	// it through untouched.
	Priority int

	// Movable allows the relaxation pass to displace this element.
	Movable bool

	// Static marks the element as a pure obstacle: it repels others but is
	// itself never displaced, regardless of Movable.
	Static bool
}

// moves reports whether the relaxation pass may displace this element.
func (e *Element) moves() bool {
	return e.Movable && !e.Static
}

// validate checks the element's geometry and identity. The zero-value box
// is rejected only when inverted; zero-area boxes are legal obstacles.
func (e *Element) validate() error {
	if err := errors.ValidateID(e.ID); err != nil {
		return err
	}
	if e.Kind != "" {
		if err := errors.ValidateKind(e.Kind); err != nil {
			return err
		}
	}
	if err := errors.ValidateBox(e.Box); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidElement, err, "element %s", e.ID)
	}
	if err := errors.ValidateFinite("anchor coordinate", e.Anchor.X, e.Anchor.Y); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidElement, err, "element %s", e.ID)
	}
	return nil
}
