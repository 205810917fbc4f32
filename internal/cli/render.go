package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/pkg/pipeline"
)

// renderCommand creates the render command for end-to-end step rendering.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		example    string
		noCache    bool
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "render [step.json]",
		Short: "Render a step payload to visual output",
		Long: `Render a step payload to visual output.

The render command runs the full pipeline: it interprets the payload, builds
the drawable scene, and renders it to SVG, PNG, PDF, or JSON. The payload
comes from a file argument, from stdin when the argument is -, or from a
bundled example via --example.

Results are cached locally for faster subsequent runs.

Use 'scene' and 'visualize' to run the two halves separately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateVizType(opts.VizType); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			if err := inputOptions(&opts, args, example); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&example, "example", "e", "", "bundled example name (see 'flowstep examples')")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Scene flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: canvas (default), graphviz")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width (canvas)")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height (canvas)")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "graphviz layout engine: dot (default), neato, fdp")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: classic (default), blueprint")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.Legend, "legend", opts.Legend, "include the legend panel")
	cmd.Flags().BoolVar(&opts.Details, "details", opts.Details, "include the step details panel")

	return cmd
}

// applyRenderConfig overlays config-file render defaults onto opts for
// flags the user did not set explicitly. Commands without one of these
// flags are unaffected: Changed is false for unknown flag names.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	cfg := c.cfg.Render
	if !flags.Changed("type") && cfg.VizType != "" {
		opts.VizType = cfg.VizType
	}
	if !flags.Changed("style") && cfg.Style != "" {
		opts.Style = cfg.Style
	}
	if !flags.Changed("scale") && cfg.Scale != 0 {
		opts.Scale = cfg.Scale
	}
	if !flags.Changed("legend") {
		opts.Legend = cfg.Legend
	}
	if !flags.Changed("details") {
		opts.Details = cfg.Details
	}
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering step...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      outputBase(output, opts),
		nodeCount: result.Stats.NodeCount,
		edgeCount: result.Stats.EdgeCount,
		pathLen:   result.Stats.PathLength,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles everything writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string
	nodeCount int
	edgeCount int
	pathLen   int
	cacheHit  bool
}

// writeArtifacts writes one file per requested format and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := p.base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.nodeCount, p.edgeCount, p.pathLen, p.cacheHit)
	return nil
}

// outputBase derives the base output path (without format extension) from
// the --output flag and the payload source. A known format extension on
// --output is stripped so "step.svg" and "step" behave the same.
func outputBase(output string, opts pipeline.Options) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if opts.Path != "" {
		return strings.TrimSuffix(opts.Path, filepath.Ext(opts.Path))
	}
	if opts.Example != "" {
		return opts.Example
	}
	return "step"
}
