// Package cache provides content-addressed caching for pipeline stages.
//
// Cache keys derive from payload hashes and option sets, so an entry can
// never describe stale content: changing any input produces a new key and
// the TTLs only bound storage growth. Backends:
//   - file: directory-sharded JSON entries for CLI usage
//   - null: no-op cache for tests and disabled caching
//   - redis: hot cache for multi-instance server deployments
//   - mongo: durable cache with TTL-indexed expiry
//   - tiered: Redis over Mongo, reads backfill the hot tier
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per pipeline stage.
const (
	// TTLStep applies to parsed step documents.
	TTLStep = 7 * 24 * time.Hour

	// TTLScene applies to built scene documents.
	TTLScene = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered artifacts. Shorter than the others
	// because artifacts carry the largest payloads and rebuild cheaply
	// from a cached scene.
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface all cache backends implement.
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures, never for absent keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SceneKeyOpts captures every option that changes a built scene.
type SceneKeyOpts struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Style   string  `json:"style"`
	Engine  string  `json:"engine"`
}

// ArtifactKeyOpts captures every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Style   string  `json:"style"`
	Scale   float64 `json:"scale"`
	Legend  bool    `json:"legend"`
	Details bool    `json:"details"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// StepKey generates a key for parsed step caching.
	// The hash is the content hash of the raw payload.
	StepKey(payloadHash string) string

	// SceneKey generates a key for scene caching.
	SceneKey(stepHash string, opts SceneKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys with no scoping prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// StepKey generates a key for parsed step caching.
func (k *DefaultKeyer) StepKey(payloadHash string) string {
	return "step:" + payloadHash
}

// SceneKey generates a key for scene caching.
func (k *DefaultKeyer) SceneKey(stepHash string, opts SceneKeyOpts) string {
	return hashKey("scene", stepHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
