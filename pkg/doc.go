// Package pkg provides the core libraries for Flowstep max-flow visualization.
//
// # Overview
//
// Flowstep turns single Edmonds-Karp algorithm steps into labeled network
// drawings with plain-language explanations. Each step arrives as a JSON
// payload describing the network and the augmenting path chosen by an
// external solver; Flowstep never runs the algorithm itself. The pkg
// directory is organized into four main areas:
//
//  1. [step] + [scene] - Domain logic (payload parsing, explanation, display model)
//  2. [layout] + [render] - Visualization (geometry, SVG/PNG/PDF output)
//  3. [pipeline] - Orchestration (interpret → scene → render)
//  4. [cache] + [config] + [view] - Infrastructure (caching, settings, sessions)
//
// # Architecture
//
// The typical data flow through Flowstep:
//
//	Step Payload (JSON)
//	         ↓
//	    [step] package (parse + validate + explain)
//	         ↓
//	    [layout] package (node positions + arrow geometry)
//	         ↓
//	    [scene] package (render-ready display model)
//	         ↓
//	    [render] package (canvas or Graphviz drawing)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Parse a step payload and render a canvas visualization:
//
//	import (
//	    "github.com/matzehuels/flowstep/pkg/layout"
//	    "github.com/matzehuels/flowstep/pkg/render/canvas"
//	    "github.com/matzehuels/flowstep/pkg/scene"
//	    "github.com/matzehuels/flowstep/pkg/step"
//	)
//
//	// 1. Parse and validate the payload
//	s, _ := step.Parse(data)
//
//	// 2. Build the scene (positions, arrows, labels, highlights)
//	sc := scene.Build(s, layout.DefaultFrame(), scene.StyleClassic)
//
//	// 3. Render to SVG
//	svg := canvas.RenderSVG(sc, canvas.WithLegend(), canvas.WithDetails())
//
// Or run the full cached pipeline the way the CLI and server do:
//
//	opts := pipeline.Options{Example: "step1", Formats: []string{"svg"}}
//	runner := pipeline.NewRunner(c, keyer, logger)
//	result, _ := runner.Execute(ctx, opts)
//
// # Main Packages
//
// ## Domain Logic
//
// [step] - Step payload parsing and interpretation. Validates required
// fields and edge shapes, derives the augmenting-path highlight set, and
// produces the explanation text for both augmenting and terminal steps.
// Ships embedded example payloads.
//
// [scene] - Render-ready display model. [scene.Build] combines a parsed
// step with a layout frame into positioned nodes, arrows, and labels that
// every renderer consumes unchanged.
//
// [view] - Session view state for the HTTP API and TUI. A view holds the
// last successfully interpreted step and survives failed submissions.
// Memory and Redis backed stores.
//
// ## Visualization
//
// [layout] - Deterministic node placement. Source and sink sit on fixed
// anchors; intermediate nodes are spaced evenly on a ring. [geom] carries
// the point and arrow math (shaft shortening, head wings, label offsets).
//
// [render/canvas] - The primary renderer. Draws the fixed-frame step
// picture as SVG and converts to PDF/PNG via librsvg. Styles live in
// [render/canvas/styles] (classic, blueprint).
//
// [render/graphviz] - Alternative Graphviz rendering for networks where
// automatic layout reads better than the fixed frame.
//
// ## Orchestration
//
// [pipeline] - Complete visualization pipeline (interpret → scene →
// render) used by CLI, API, and TUI. Each stage is cached independently
// by content hash so repeated renders skip finished work.
//
// ## Infrastructure
//
// [cache] - Byte caches behind a single interface: file (CLI), Redis,
// MongoDB, tiered Redis+MongoDB (server), and null (disabled). Keys are
// content hashes computed by a [cache.Keyer].
//
// [config] - TOML configuration with XDG-style default paths. Controls
// render defaults, server address, cache backend, and log level.
//
// [errors] - Coded errors shared by all surfaces, so the CLI and the API
// report the same condition the same way.
//
// [observability] - Request/stage instrumentation hooks for the charm
// logger.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/step/...       # Specific package
//	go test -run Example         # Examples only
//
// [step]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/step
// [scene]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/scene
// [scene.Build]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/scene#Build
// [view]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/view
// [layout]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/layout
// [geom]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/geom
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/render/canvas
// [render/canvas/styles]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/render/canvas/styles
// [render/graphviz]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/render/graphviz
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/cache
// [cache.Keyer]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/cache#Keyer
// [config]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/buildinfo
// [render]: https://pkg.go.dev/github.com/matzehuels/flowstep/pkg/render
package pkg
