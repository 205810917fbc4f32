package pipeline

import (
	"fmt"

	"github.com/matzehuels/flowstep/pkg/errors"
	"github.com/matzehuels/flowstep/pkg/render/canvas"
	"github.com/matzehuels/flowstep/pkg/render/graphviz"
	"github.com/matzehuels/flowstep/pkg/scene"
)

// Render generates output artifacts in the requested formats, keyed by format
// name. The scene's viz type decides which renderer handles it.
func Render(sc scene.Scene, opts Options) (map[string][]byte, error) {
	if sc.IsGraphviz() {
		return renderGraphviz(sc, opts)
	}
	return renderCanvas(sc, opts)
}

// renderCanvas generates outputs from a positioned canvas scene.
func renderCanvas(sc scene.Scene, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = canvas.RenderSVG(sc, svgOpts...)
		case FormatPNG:
			data, err = canvas.RenderPNG(sc,
				canvas.WithScale(opts.Scale),
				canvas.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = canvas.RenderPDF(sc, canvas.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = scene.Marshal(sc)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported,
				"unsupported canvas format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderGraphviz generates outputs from a graphviz scene. The DOT source in
// the scene is laid out by the graphviz engine at render time.
func renderGraphviz(sc scene.Scene, opts Options) (map[string][]byte, error) {
	if sc.DOT == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graphviz scene missing DOT source")
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = graphviz.RenderSVG(sc.DOT)
		case FormatPNG:
			data, err = graphviz.RenderPNG(sc.DOT, opts.Scale)
		case FormatPDF:
			data, err = graphviz.RenderPDF(sc.DOT)
		case FormatJSON:
			data, err = scene.Marshal(sc)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported,
				"unsupported graphviz format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions maps render options onto canvas SVG options.
func buildSVGOptions(opts Options) []canvas.SVGOption {
	svgOpts := []canvas.SVGOption{canvas.WithStyle(canvas.StyleFor(opts.Style))}
	if opts.Legend {
		svgOpts = append(svgOpts, canvas.WithLegend())
	}
	if opts.Details {
		svgOpts = append(svgOpts, canvas.WithDetails())
	}
	return svgOpts
}
