package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/pkg/pipeline"
	"github.com/matzehuels/flowstep/pkg/step"
)

// explainCommand creates the explain command for printing step explanations.
func (c *CLI) explainCommand() *cobra.Command {
	var example string

	cmd := &cobra.Command{
		Use:   "explain [step.json]",
		Short: "Parse a step payload and print its explanation",
		Long: `Parse a step payload and print its explanation.

The explain command reads one Edmonds-Karp step payload, validates it, and
prints the plain-language explanation together with the network state. No
rendering happens; use 'render' for visual output.

The payload comes from a file argument, from stdin when the argument is -,
or from a bundled example via --example.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{}
			if err := inputOptions(&opts, args, example); err != nil {
				return err
			}
			return runExplain(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&example, "example", "e", "", "bundled example name (see 'flowstep examples')")

	return cmd
}

// runExplain parses the payload and prints the explanation and network state.
func runExplain(ctx context.Context, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	s, err := pipeline.Interpret(opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Interpreted step %d", s.Number))

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Step %d", s.Number)))
	printNewline()
	fmt.Println(s.Explanation())
	printNewline()

	if !s.IsTerminal() {
		printKeyValue("Path", s.PathString())
		printKeyValue("Bottleneck", step.FormatAmount(s.PathCapacity))
	}
	printKeyValue("Max flow", step.FormatAmount(s.MaxFlow))
	printKeyValue("Nodes", strings.Join(s.Nodes, ", "))
	printNewline()

	hl := s.Highlights()
	for _, e := range s.Edges {
		printEdge(e, hl[step.EdgeKey(e.From, e.To)])
	}
	return nil
}
