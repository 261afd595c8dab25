// Package cache provides byte-oriented caches for computed layouts and
// rendered artifacts.
//
// A layout is a pure function of the input graph and the layout options, so
// results are keyed by a content hash of both. The CLI stacks an in-process
// [MemoryCache] in front of an on-disk [FileCache]; tests and --no-cache runs
// use [NullCache].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by string key.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A zero ttl means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// LayoutKeyOpts holds every option that changes the outcome of a layout run.
type LayoutKeyOpts struct {
	Dimensions int     `json:"dimensions"`
	Ticks      int     `json:"ticks"`
	Seed       uint64  `json:"seed"`
	Schedule   string  `json:"schedule"` // hash of the alpha schedule
	Forces     string  `json:"forces"`   // hash of the force specs
	Spread     float64 `json:"spread,omitempty"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Engine string  `json:"engine"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Labels bool    `json:"labels,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the inputs into "layout:" and "artifact:" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns the key of a layout computed from a graph with the given hash.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns the key of an artifact rendered from a layout with the given hash.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
