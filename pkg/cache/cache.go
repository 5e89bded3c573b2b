// Package cache provides pluggable caching for the huffview pipeline.
//
// The pipeline caches its expensive stages (tree construction, layout,
// rendered artifacts) keyed by a content hash of the scanned input plus the
// options that shaped the stage. Three backends are provided:
//
//   - FileCache: JSON entries under a directory, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching entirely
//
// Keys are produced by a [Keyer] so every consumer derives identical keys
// for identical work, and a [ScopedKeyer] can namespace keys per source
// when several inputs share one backend.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Trees and layouts are pure functions of their
// inputs, so they keep for a week; rendered artifacts also depend on
// renderer options that churn more often.
const (
	// TTLTree is the lifetime of cached tree documents.
	TTLTree = 7 * 24 * time.Hour

	// TTLLayout is the lifetime of cached layout documents.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL stores
	// the value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// TreeKeyOpts captures everything besides the input bytes that influences
// a cached tree document.
type TreeKeyOpts struct {
	Source string `json:"source,omitempty"`
}

// LayoutKeyOpts captures the layout geometry folded into layout keys.
type LayoutKeyOpts struct {
	NodeRadius   float64 `json:"node_radius"`
	LevelHeight  float64 `json:"level_height"`
	MinSlotWidth float64 `json:"min_slot_width"`
	TopMargin    float64 `json:"top_margin"`
	SideMargin   float64 `json:"side_margin"`
}

// ArtifactKeyOpts captures the render options folded into artifact keys.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Title     string `json:"title,omitempty"`
	ShowCodes bool   `json:"show_codes,omitempty"`
}

// Keyer derives cache keys for each pipeline stage. Implementations must
// be deterministic: the same inputs always yield the same key.
type Keyer interface {
	// TreeKey keys a tree document by the input content hash.
	TreeKey(inputHash string, opts TreeKeyOpts) string

	// LayoutKey keys a layout document by the input hash and geometry.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and
	// render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces prefix:sha256hex keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TreeKey generates a key for tree document caching.
func (k *DefaultKeyer) TreeKey(inputHash string, opts TreeKeyOpts) string {
	return hashKey("tree", inputHash, opts)
}

// LayoutKey generates a key for layout document caching.
func (k *DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
