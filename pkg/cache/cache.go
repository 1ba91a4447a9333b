// Package cache provides pluggable caching for layout and render results.
//
// Three backends are included: FileCache for CLI usage, RedisCache for the
// server, and NullCache to disable caching. All backends store opaque bytes
// under string keys with optional TTLs; key construction lives in the Keyer
// so every caller derives keys the same way.
package cache

import (
	"context"
	"time"
)

// Default TTLs per key type. Layout results are pure functions of their
// inputs and could live forever; the TTLs bound disk and Redis growth.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (nil, false, nil) on a miss; errors are reserved for backend
// failures. A ttl of 0 stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// =============================================================================
// Key Construction
// =============================================================================

// LayoutKeyOpts are the inputs, beyond the scene itself, that change a
// solved layout.
type LayoutKeyOpts struct {
	ConfigHash string // hash of the layout constants in effect
	Iterations int    // relaxation iteration budget
}

// ArtifactKeyOpts are the inputs, beyond the layout itself, that change a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format string  // "svg", "png", "pdf", "dot"
	Width  int     // raster width in pixels, 0 for vector formats
	Scale  float64 // pixels per canvas unit, 0 for the default
}

// Keyer generates cache keys for the two cacheable pipeline stages.
// Implementations must be deterministic: equal inputs yield equal keys
// across processes and releases.
type Keyer interface {
	// LayoutKey generates a key for a solved layout, from the scene hash
	// and the solve options.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the layout
	// hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme: a type prefix plus a
// SHA-256 hash over the JSON encoding of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a solved layout.
func (k *DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
