package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/pkg/pipeline"
	"github.com/matzehuels/flowstep/pkg/scene"
)

// sceneCommand creates the scene command for computing drawable scenes.
func (c *CLI) sceneCommand() *cobra.Command {
	var (
		output  string
		example string
		noCache bool
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "scene [step.json]",
		Short: "Compute the drawable scene for a step",
		Long: `Compute the drawable scene for a step.

The scene command interprets a step payload and computes the scene: node
positions, arrow geometry, and label anchors for canvas scenes, or the DOT
source for graphviz scenes. The output is a scene.json file (same format as
'render -f json') that can be rendered to SVG/PNG/PDF using 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts)
			if err := pipeline.ValidateVizType(opts.VizType); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			if err := inputOptions(&opts, args, example); err != nil {
				return err
			}
			return c.runScene(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().StringVarP(&example, "example", "e", "", "bundled example name (see 'flowstep examples')")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Scene flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: canvas (default), graphviz")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width (canvas)")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height (canvas)")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "graphviz layout engine: dot (default), neato, fdp")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: classic (default), blueprint")

	return cmd
}

// runScene interprets the payload, computes the scene, and writes it out.
func (c *CLI) runScene(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	s, _, err := runner.InterpretWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("interpret: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s scene...", opts.VizType))
	spinner.Start()

	sc, cacheHit, err := runner.BuildSceneWithCacheInfo(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Scene failed")
		return fmt.Errorf("compute scene: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", opts) + ".scene.json"
	}

	if err := scene.WriteFile(sc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Scene complete")
	printFile(outputPath)
	printStats(len(s.Nodes), len(s.Edges), len(s.AugmentingPath), cacheHit)
	printNewline()
	printNextStep("Render", "flowstep visualize "+outputPath)

	return nil
}
