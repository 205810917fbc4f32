// Package pipeline provides the core visualization pipeline for flowstep.
//
// This package implements the complete interpret → scene → render pipeline
// that can be used by CLI, API, and TUI components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Interpret: Parse and validate an externally supplied step payload
//  2. Scene: Compute node positions and arrow geometry for the network
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Example: "step1",
//	    VizType: "canvas",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Interpret only
//	s, err := runner.Interpret(ctx, interpretOpts)
//
//	// Scene with an existing step
//	sc, err := runner.BuildScene(ctx, s, sceneOpts)
//
//	// Render with an existing scene
//	artifacts, err := runner.Render(ctx, sc, renderOpts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowstep/pkg/cache"
	"github.com/matzehuels/flowstep/pkg/errors"
	"github.com/matzehuels/flowstep/pkg/layout"
	"github.com/matzehuels/flowstep/pkg/render/graphviz"
	"github.com/matzehuels/flowstep/pkg/scene"
	"github.com/matzehuels/flowstep/pkg/step"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = layout.DefaultHeight

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = scene.VizTypeCanvas

// DefaultStyle is the default visual style.
const DefaultStyle = scene.StyleClassic

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	scene.StyleClassic:   true,
	scene.StyleBlueprint: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	scene.VizTypeCanvas:   true,
	scene.VizTypeGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Interpret options. Exactly one payload source is used, in this
	// order of precedence: Payload, Path, Example.
	Payload string `json:"payload,omitempty"` // Raw step JSON text
	Path    string `json:"path,omitempty"`    // Step file on disk
	Example string `json:"example,omitempty"` // Canned example name
	Refresh bool   `json:"refresh,omitempty"`

	// Scene options
	VizType string  `json:"viz_type,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Engine  string  `json:"engine,omitempty"` // Graphviz layout engine

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Scale   float64  `json:"scale,omitempty"`   // PNG resolution multiplier
	Legend  bool     `json:"legend,omitempty"`  // Show the legend panel in SVG
	Details bool     `json:"details,omitempty"` // Show the step details panel in SVG

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Step is the validated step document.
	Step step.Step

	// StepHash is the content hash of the canonical step document.
	StepHash string

	// Scene contains the drawable scene.
	Scene scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	PathLength    int
	InterpretTime time.Duration
	SceneTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	InterpretHit bool // Whether the parsed step came from cache
	SceneHit     bool // Whether the scene came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: classic, blueprint)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: canvas, graphviz)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForInterpret(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForInterpret checks required fields for interpreting a step.
func (o *Options) ValidateForInterpret() error {
	if o.Payload == "" && o.Path == "" && o.Example == "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"a payload, file path, or example name is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetSceneDefaults sets default values for scene construction.
func (o *Options) SetSceneDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.IsGraphviz() && o.Engine == "" {
		o.Engine = graphviz.DefaultEngine
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForScene validates and sets defaults for scene construction.
func (o *Options) ValidateForScene() error {
	o.SetSceneDefaults()
	return o.validateVizTypeAndStyle()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetSceneDefaults()
	o.SetRenderDefaults()
	if err := o.validateVizTypeAndStyle(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// validateVizTypeAndStyle checks the scene-affecting enum options.
func (o *Options) validateVizTypeAndStyle() error {
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsCanvas returns true if this is a canvas visualization.
func (o *Options) IsCanvas() bool {
	return o.VizType == "" || o.VizType == scene.VizTypeCanvas
}

// IsGraphviz returns true if this is a graphviz visualization.
func (o *Options) IsGraphviz() bool {
	return o.VizType == scene.VizTypeGraphviz
}

// SceneKeyOpts returns cache key options for scene construction.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		VizType: o.VizType,
		Width:   o.Width,
		Height:  o.Height,
		Style:   o.Style,
		Engine:  o.Engine,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Scale:   o.Scale,
		Legend:  o.Legend,
		Details: o.Details,
	}
}
