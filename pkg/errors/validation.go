package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/placardlabs/placard/pkg/geom"
)

// ValidateFinite checks that every value is a finite number (not NaN or ±Inf).
// The name is used in the error message to identify the offending field.
func ValidateFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
		}
	}
	return nil
}

// ValidateBox checks that a box has finite coordinates and is not inverted.
// Zero-area boxes are allowed; callers that need strictly positive extent
// should check Width/Height themselves.
func ValidateBox(b geom.Box) error {
	if err := ValidateFinite("box coordinate", b.MinX, b.MinY, b.MaxX, b.MaxY); err != nil {
		return Wrap(ErrCodeInvalidBox, err, "box %+v", b)
	}
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return New(ErrCodeInvalidBox, "box is inverted: %+v", b)
	}
	return nil
}

// ValidateCanvas checks that a box is usable as canvas bounds: valid and with
// strictly positive extent on both axes.
func ValidateCanvas(b geom.Box) error {
	if err := ValidateBox(b); err != nil {
		return err
	}
	if b.Width() <= 0 || b.Height() <= 0 {
		return New(ErrCodeInvalidBox, "canvas bounds must have positive extent: %+v", b)
	}
	return nil
}

// ValidateSector checks that a sector has finite parameters and a strictly
// positive radius. Angles are accepted in any range; they are reduced mod
// 360 by the geometry layer.
func ValidateSector(s geom.Sector) error {
	if err := ValidateFinite("sector parameter", s.Center.X, s.Center.Y, s.Radius, s.StartDeg, s.EndDeg); err != nil {
		return Wrap(ErrCodeInvalidSector, err, "sector %+v", s)
	}
	if s.Radius <= 0 {
		return New(ErrCodeInvalidSector, "radius must be positive, got %v", s.Radius)
	}
	return nil
}

// ValidateID checks that an identifier is safe for use in cache keys and
// serialized output: non-empty, no control characters, bounded length.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidElement, "id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidElement, "id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidElement, "id contains control characters")
		}
	}
	return nil
}

// ValidateKind checks that a label kind is a simple lowercase token.
func ValidateKind(kind string) error {
	if kind == "" {
		return New(ErrCodeInvalidElement, "kind cannot be empty")
	}
	if strings.ToLower(kind) != kind {
		return New(ErrCodeInvalidElement, "kind must be lowercase: %q", kind)
	}
	for _, r := range kind {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return New(ErrCodeInvalidElement, "kind contains invalid character %q", r)
		}
	}
	return nil
}
