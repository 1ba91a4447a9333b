package layout

import (
	"github.com/BurntSushi/toml"

	"github.com/placardlabs/placard/pkg/errors"
)

// Default layout constants. These mirror the canvas coordinate space, not
// pixels: a typical canvas is [-10, 10] on both axes.
const (
	// DefaultMaxDistance is the maximum allowed distance from an anchor to
	// the nearest corner of its label box.
	DefaultMaxDistance = 3.0

	// DefaultLabelGap is the anchor-adjacent ring distance at which the
	// twelve placement candidates are generated.
	DefaultLabelGap = 0.35

	// DefaultSpacing is the minimum clearance kept between label boxes
	// during candidate selection.
	DefaultSpacing = 0.1

	// DefaultBoxRepulsion is the fraction of the penetration depth applied
	// as displacement per relaxation iteration.
	DefaultBoxRepulsion = 0.5

	// DefaultSectorRepulsion is the constant displacement magnitude applied
	// per iteration to elements inside an exclusion sector.
	DefaultSectorRepulsion = 0.25

	// DefaultIterations is the fixed relaxation iteration budget.
	DefaultIterations = 50

	// DefaultKind is the label kind assumed when a caller asks for a kind
	// with no configured size.
	DefaultKind = "point"
)

// Size is a label-box extent for one label kind.
type Size struct {
	Width  float64 `toml:"width" json:"width" bson:"width"`
	Height float64 `toml:"height" json:"height" bson:"height"`
}

// Config holds the layout constants of the engine: per-kind label sizes,
// distance limits, and repulsion strengths. A Config is constructed once
// (from defaults or a TOML file), validated, and then treated as immutable;
// the Manager holds it by pointer and never writes to it.
type Config struct {
	MaxDistance     float64         `toml:"max_distance"`
	LabelGap        float64         `toml:"label_gap"`
	Spacing         float64         `toml:"spacing"`
	BoxRepulsion    float64         `toml:"box_repulsion"`
	SectorRepulsion float64         `toml:"sector_repulsion"`
	Iterations      int             `toml:"iterations"`
	Sizes           map[string]Size `toml:"sizes"`
}

// DefaultConfig returns the built-in layout constants.
func DefaultConfig() *Config {
	return &Config{
		MaxDistance:     DefaultMaxDistance,
		LabelGap:        DefaultLabelGap,
		Spacing:         DefaultSpacing,
		BoxRepulsion:    DefaultBoxRepulsion,
		SectorRepulsion: DefaultSectorRepulsion,
		Iterations:      DefaultIterations,
		Sizes: map[string]Size{
			"point":  {Width: 2.0, Height: 0.8},
			"device": {Width: 2.4, Height: 1.0},
			"note":   {Width: 3.0, Height: 1.2},
		},
	}
}

// LoadConfig reads a TOML config file on top of the defaults, so a file only
// needs to name the constants it overrides. Unknown kinds in [sizes] are
// allowed and simply extend the size table.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every constant is usable by the engine.
func (c *Config) Validate() error {
	if c.MaxDistance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_distance must be positive, got %v", c.MaxDistance)
	}
	if c.LabelGap <= 0 || c.LabelGap > c.MaxDistance {
		return errors.New(errors.ErrCodeInvalidConfig, "label_gap must be in (0, max_distance], got %v", c.LabelGap)
	}
	if c.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spacing cannot be negative, got %v", c.Spacing)
	}
	if c.BoxRepulsion <= 0 || c.SectorRepulsion <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "repulsion strengths must be positive")
	}
	if c.Iterations <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must be positive, got %d", c.Iterations)
	}
	if _, ok := c.Sizes[DefaultKind]; !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "sizes must include the %q kind", DefaultKind)
	}
	for kind, s := range c.Sizes {
		if err := errors.ValidateKind(kind); err != nil {
			return err
		}
		if s.Width <= 0 || s.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "size for kind %q must be positive, got %vx%v", kind, s.Width, s.Height)
		}
	}
	return nil
}

// SizeFor returns the label-box size for a kind, falling back to the
// DefaultKind entry for kinds the config does not name. Selection never
// fails on an unknown kind; it just places a default-sized box.
func (c *Config) SizeFor(kind string) Size {
	if s, ok := c.Sizes[kind]; ok {
		return s
	}
	return c.Sizes[DefaultKind]
}
