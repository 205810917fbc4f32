package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowstep/pkg/cache"
	"github.com/matzehuels/flowstep/pkg/errors"
	"github.com/matzehuels/flowstep/pkg/render/graphviz"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"classic", false},
		{"blueprint", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"canvas", false},
		{"graphviz", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForInterpret(t *testing.T) {
	// No payload source
	opts := Options{}
	err := opts.ValidateForInterpret()
	if err == nil {
		t.Error("Missing payload source should fail")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}

	// Inline payload
	opts = Options{Payload: `{"step":1}`}
	if err := opts.ValidateForInterpret(); err != nil {
		t.Errorf("Payload options should pass: %v", err)
	}

	// Example name
	opts = Options{Example: "step1"}
	if err := opts.ValidateForInterpret(); err != nil {
		t.Errorf("Example options should pass: %v", err)
	}
}

func TestOptionsIsCanvas(t *testing.T) {
	opts := Options{}
	if !opts.IsCanvas() {
		t.Error("Empty VizType should be canvas")
	}

	opts.VizType = "canvas"
	if !opts.IsCanvas() {
		t.Error("canvas VizType should be canvas")
	}

	opts.VizType = "graphviz"
	if opts.IsCanvas() {
		t.Error("graphviz VizType should not be canvas")
	}
}

func TestOptionsIsGraphviz(t *testing.T) {
	opts := Options{}
	if opts.IsGraphviz() {
		t.Error("Empty VizType should not be graphviz")
	}

	opts.VizType = "graphviz"
	if !opts.IsGraphviz() {
		t.Error("graphviz VizType should be graphviz")
	}
}

func TestSetSceneDefaults(t *testing.T) {
	opts := Options{}
	opts.SetSceneDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Engine != "" {
		t.Errorf("Canvas options should not get an engine, got %s", opts.Engine)
	}

	// Graphviz scenes get a default engine
	opts = Options{VizType: "graphviz"}
	opts.SetSceneDefaults()
	if opts.Engine != graphviz.DefaultEngine {
		t.Errorf("Engine should be %s, got %s", graphviz.DefaultEngine, opts.Engine)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %f, got %f", DefaultScale, opts.Scale)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Example: "step1"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalVizType := opts.VizType
	originalStyle := opts.Style
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestSceneKeyOpts(t *testing.T) {
	opts := Options{VizType: "graphviz", Width: 500, Height: 300, Style: "blueprint", Engine: "neato"}
	keyOpts := opts.SceneKeyOpts()

	if keyOpts.VizType != "graphviz" {
		t.Errorf("VizType = %v, want graphviz", keyOpts.VizType)
	}
	if keyOpts.Width != 500 || keyOpts.Height != 300 {
		t.Errorf("Size = %vx%v, want 500x300", keyOpts.Width, keyOpts.Height)
	}
	if keyOpts.Style != "blueprint" {
		t.Errorf("Style = %v, want blueprint", keyOpts.Style)
	}
	if keyOpts.Engine != "neato" {
		t.Errorf("Engine = %v, want neato", keyOpts.Engine)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Style: "classic", Scale: 2.0, Legend: true}
	keyOpts := opts.ArtifactKeyOpts("png")

	if keyOpts.Format != "png" {
		t.Errorf("Format = %v, want png", keyOpts.Format)
	}
	if keyOpts.Style != "classic" {
		t.Errorf("Style = %v, want classic", keyOpts.Style)
	}
	if keyOpts.Scale != 2.0 {
		t.Errorf("Scale = %v, want 2.0", keyOpts.Scale)
	}
	if !keyOpts.Legend || keyOpts.Details {
		t.Errorf("Legend/Details = %v/%v, want true/false", keyOpts.Legend, keyOpts.Details)
	}
}

func TestResolvePayload(t *testing.T) {
	// Inline payload wins over other sources
	opts := Options{Payload: `{"step":1}`, Example: "step1"}
	raw, err := resolvePayload(opts)
	if err != nil {
		t.Fatalf("resolvePayload() error = %v", err)
	}
	if string(raw) != `{"step":1}` {
		t.Errorf("raw = %s, want inline payload", raw)
	}

	// File path
	path := filepath.Join(t.TempDir(), "step.json")
	if err := os.WriteFile(path, []byte(`{"step":2}`), 0644); err != nil {
		t.Fatal(err)
	}
	raw, err = resolvePayload(Options{Path: path})
	if err != nil {
		t.Fatalf("resolvePayload() error = %v", err)
	}
	if string(raw) != `{"step":2}` {
		t.Errorf("raw = %s, want file contents", raw)
	}

	// Example name
	raw, err = resolvePayload(Options{Example: "step1"})
	if err != nil {
		t.Fatalf("resolvePayload() error = %v", err)
	}
	if !bytes.Contains(raw, []byte(`"augmentingPath"`)) {
		t.Error("Example payload should contain an augmenting path")
	}

	// No source
	if _, err := resolvePayload(Options{}); err == nil {
		t.Error("No payload source should fail")
	}
}

func TestInterpret(t *testing.T) {
	s, err := Interpret(Options{Example: "step1"})
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if s.Number != 1 {
		t.Errorf("Number = %v, want 1", s.Number)
	}
	if len(s.Nodes) != 4 || len(s.Edges) != 5 {
		t.Errorf("network = %d nodes/%d edges, want 4/5", len(s.Nodes), len(s.Edges))
	}

	_, err = Interpret(Options{Payload: `{"step": 1`})
	if errors.GetCode(err) != errors.ErrCodeMalformedInput {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedInput)
	}
}

// =============================================================================
// Runner
// =============================================================================

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Example: "step1",
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Step.Number != 1 {
		t.Errorf("Step.Number = %v, want 1", result.Step.Number)
	}
	if result.Stats.NodeCount != 4 || result.Stats.EdgeCount != 5 {
		t.Errorf("Stats = %d nodes/%d edges, want 4/5", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.Stats.PathLength != 2 {
		t.Errorf("Stats.PathLength = %d, want 2", result.Stats.PathLength)
	}
	if len(result.StepHash) != 64 {
		t.Errorf("StepHash length = %d, want 64", len(result.StepHash))
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !bytes.Contains(svg, []byte("<svg")) {
		t.Error("Execute() should produce an SVG artifact")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("Execute() should produce a JSON artifact")
	}

	// Null cache never hits
	if result.CacheInfo.InterpretHit || result.CacheInfo.SceneHit || result.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want all misses with null cache", result.CacheInfo)
	}
}

func TestRunnerExecuteCacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	opts := Options{Example: "step1", Formats: []string{FormatSVG}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("First Execute() error = %v", err)
	}
	if first.CacheInfo.InterpretHit || first.CacheInfo.SceneHit || first.CacheInfo.RenderHit {
		t.Errorf("First run CacheInfo = %+v, want all misses", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second Execute() error = %v", err)
	}
	if !second.CacheInfo.InterpretHit || !second.CacheInfo.SceneHit || !second.CacheInfo.RenderHit {
		t.Errorf("Second run CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("Cached SVG should match the rendered one")
	}
}

func TestRunnerExecuteRefresh(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{Example: "step1"}); err != nil {
		t.Fatalf("Priming Execute() error = %v", err)
	}

	result, err := r.Execute(context.Background(), Options{Example: "step1", Refresh: true})
	if err != nil {
		t.Fatalf("Refresh Execute() error = %v", err)
	}
	if result.CacheInfo.InterpretHit || result.CacheInfo.SceneHit || result.CacheInfo.RenderHit {
		t.Errorf("Refresh run CacheInfo = %+v, want all misses", result.CacheInfo)
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("Execute() without a payload source should fail")
	}

	_, err := r.Execute(context.Background(), Options{Example: "step1", Formats: []string{"bmp"}})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRunnerExecuteTerminalStep(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Example: "step3"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !result.Step.IsTerminal() {
		t.Error("step3 should be terminal")
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("9")) {
		t.Error("Terminal SVG should mention the final flow value")
	}
}
