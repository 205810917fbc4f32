package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/pkg/pipeline"
	"github.com/matzehuels/flowstep/pkg/scene"
)

// visualizeCommand creates the visualize command for rendering from a scene.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "visualize [scene.json]",
		Short: "Render visual output from a computed scene",
		Long: `Render visual output from a computed scene.

The visualize command takes a scene.json file (produced by 'scene') and
renders it to SVG, PNG, or PDF format. The scene contains all drawing
geometry, so this step is purely about rendering.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a step payload to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			styleSet := cmd.Flags().Changed("style")
			return c.runVisualize(cmd.Context(), args[0], opts, output, styleSet, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: classic (default), blueprint")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.Legend, "legend", opts.Legend, "include the legend panel")
	cmd.Flags().BoolVar(&opts.Details, "details", opts.Details, "include the step details panel")

	return cmd
}

// runVisualize loads the scene and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, styleSet, noCache bool) error {
	sc, err := scene.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	// The scene knows its own viz type; its style applies unless --style
	// was given explicitly.
	opts.VizType = sc.VizType
	if !styleSet && sc.Style != "" {
		opts.Style = sc.Style
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	pathLen := 0
	for _, e := range sc.Edges {
		if e.Highlighted {
			pathLen++
		}
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		base:      outputBase(output, pipeline.Options{Path: input}),
		nodeCount: len(sc.Nodes),
		edgeCount: len(sc.Edges),
		pathLen:   pathLen,
		cacheHit:  cacheHit,
	})
}
