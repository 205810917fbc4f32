package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowstep/pkg/cache"
	"github.com/matzehuels/flowstep/pkg/observability"
	"github.com/matzehuels/flowstep/pkg/scene"
	"github.com/matzehuels/flowstep/pkg/step"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. It does not
// store pipeline results, so multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete interpret → scene → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Interpret
	interpretStart := time.Now()
	s, interpretHit, err := r.InterpretWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("interpret: %w", err)
	}
	result.Step = s
	result.Stats.InterpretTime = time.Since(interpretStart)
	result.Stats.NodeCount = len(s.Nodes)
	result.Stats.EdgeCount = len(s.Edges)
	result.Stats.PathLength = len(s.AugmentingPath)
	result.CacheInfo.InterpretHit = interpretHit

	// Compute step hash for cache keys and API responses
	if stepData, err := step.Marshal(s); err == nil {
		result.StepHash = cache.Hash(stepData)
	}

	r.Logger.Info("interpreted step",
		"step", s.Number,
		"nodes", len(s.Nodes),
		"edges", len(s.Edges),
		"duration", result.Stats.InterpretTime)

	// Stage 2: Scene
	sceneStart := time.Now()
	sc, sceneHit, err := r.BuildSceneWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = sc
	result.Stats.SceneTime = time.Since(sceneStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("built scene",
		"viz_type", sc.VizType,
		"duration", result.Stats.SceneTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// InterpretWithCacheInfo interprets the payload with caching and returns
// cache hit info. Refresh skips the cache read but the freshly interpreted
// step is still written back, so a refresh repairs corrupt entries.
func (r *Runner) InterpretWithCacheInfo(ctx context.Context, opts Options) (step.Step, bool, error) {
	if err := opts.ValidateForInterpret(); err != nil {
		return step.Step{}, false, err
	}
	r.applyLogger(&opts)

	raw, err := resolvePayload(opts)
	if err != nil {
		return step.Step{}, false, err
	}

	observability.Pipeline().OnInterpretStart(ctx, len(raw))
	start := time.Now()

	cacheKey := r.Keyer.StepKey(cache.Hash(raw))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if s, err := step.Parse(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "step")
				observability.Pipeline().OnInterpretComplete(ctx, s.Number, time.Since(start), nil)
				return s, true, nil // Cache hit
			}
			// Corrupt entry, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "step")
	}

	s, err := interpretPayload(raw)
	if err != nil {
		observability.Pipeline().OnInterpretComplete(ctx, 0, time.Since(start), err)
		return step.Step{}, false, err
	}

	// Cache the result
	if data, err := step.Marshal(s); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLStep)
		observability.Cache().OnCacheSet(ctx, "step", len(data))
	}

	observability.Pipeline().OnInterpretComplete(ctx, s.Number, time.Since(start), nil)
	return s, false, nil // Cache miss
}

// Interpret is a convenience wrapper that calls InterpretWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Interpret(ctx context.Context, opts Options) (step.Step, error) {
	s, _, err := r.InterpretWithCacheInfo(ctx, opts)
	return s, err
}

// BuildSceneWithCacheInfo builds a scene with caching and returns cache hit
// info. The cache key covers the step content and every option that changes
// scene geometry, so differently sized or styled scenes never collide.
func (r *Runner) BuildSceneWithCacheInfo(ctx context.Context, s step.Step, opts Options) (scene.Scene, bool, error) {
	if err := opts.ValidateForScene(); err != nil {
		return scene.Scene{}, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnSceneStart(ctx, opts.VizType, len(s.Nodes))
	start := time.Now()

	stepData, err := step.Marshal(s)
	if err != nil {
		return scene.Scene{}, false, fmt.Errorf("serialize step for cache key: %w", err)
	}
	cacheKey := r.Keyer.SceneKey(cache.Hash(stepData), opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := scene.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				observability.Pipeline().OnSceneComplete(ctx, opts.VizType, time.Since(start), nil)
				return cached, true, nil // Cache hit
			}
			// Corrupt entry, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	sc := BuildScene(s, opts)

	// Cache the result
	if data, err := scene.Marshal(sc); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	observability.Pipeline().OnSceneComplete(ctx, opts.VizType, time.Since(start), nil)
	return sc, false, nil // Cache miss
}

// BuildScene is a convenience wrapper that calls BuildSceneWithCacheInfo and
// discards the cache hit info.
func (r *Runner) BuildScene(ctx context.Context, s step.Step, opts Options) (scene.Scene, error) {
	sc, _, err := r.BuildSceneWithCacheInfo(ctx, s, opts)
	return sc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only when every requested format was served
// from cache; a single missing format re-renders all of them.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc scene.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Compute cache key from scene data
	sceneData, err := scene.Marshal(sc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := Render(sc, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, sc scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
