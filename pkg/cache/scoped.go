package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments share one Redis or Mongo
// instance and their entries must not collide.
//
// Example usage:
//
//	// Staging entries separated from production
//	stagingKeyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Shared keys for a single deployment
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// StepKey generates a prefixed key for parsed step caching.
func (k *ScopedKeyer) StepKey(payloadHash string) string {
	return k.prefix + k.inner.StepKey(payloadHash)
}

// SceneKey generates a prefixed key for scene caching.
func (k *ScopedKeyer) SceneKey(stepHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(stepHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
