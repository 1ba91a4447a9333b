package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/placardlabs/placard/pkg/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placard.toml")
	content := `
max_distance = 4.0
iterations = 25

[sizes.badge]
width = 1.5
height = 0.6
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.MaxDistance != 4.0 {
		t.Errorf("MaxDistance = %v, want 4.0", cfg.MaxDistance)
	}
	if cfg.Iterations != 25 {
		t.Errorf("Iterations = %d, want 25", cfg.Iterations)
	}
	// Unset constants keep their defaults.
	if cfg.LabelGap != DefaultLabelGap {
		t.Errorf("LabelGap = %v, want default %v", cfg.LabelGap, DefaultLabelGap)
	}
	// The size table is extended, not replaced.
	if s := cfg.SizeFor("badge"); s.Width != 1.5 || s.Height != 0.6 {
		t.Errorf("SizeFor(badge) = %+v, want 1.5x0.6", s)
	}
	if s := cfg.SizeFor("point"); s.Width != 2.0 || s.Height != 0.8 {
		t.Errorf("SizeFor(point) = %+v, want default 2x0.8", s)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("LoadConfig() on a missing file returned nil error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidConfig {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeInvalidConfig)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"NegativeMaxDistance", func(c *Config) { c.MaxDistance = -1 }},
		{"ZeroLabelGap", func(c *Config) { c.LabelGap = 0 }},
		{"LabelGapBeyondMaxDistance", func(c *Config) { c.LabelGap = c.MaxDistance + 1 }},
		{"NegativeSpacing", func(c *Config) { c.Spacing = -0.1 }},
		{"ZeroBoxRepulsion", func(c *Config) { c.BoxRepulsion = 0 }},
		{"ZeroIterations", func(c *Config) { c.Iterations = 0 }},
		{"MissingDefaultKind", func(c *Config) { delete(c.Sizes, DefaultKind) }},
		{"UppercaseKind", func(c *Config) { c.Sizes["Badge"] = Size{Width: 1, Height: 1} }},
		{"ZeroWidthSize", func(c *Config) { c.Sizes["thin"] = Size{Width: 0, Height: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestSizeForUnknownKindFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	want := cfg.Sizes[DefaultKind]
	if got := cfg.SizeFor("no-such-kind"); got != want {
		t.Errorf("SizeFor(unknown) = %+v, want %+v", got, want)
	}
}
