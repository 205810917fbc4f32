package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/pkg/step"
)

// examplesCommand creates the examples command for inspecting bundled payloads.
// Without a subcommand it lists the available examples.
func (c *CLI) examplesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Inspect the bundled step payloads",
		Long: `Inspect the bundled step payloads.

Flowstep ships a three-step walkthrough of a small flow network. Each
payload is a complete Edmonds-Karp step and can be fed to 'explain',
'render', or the HTTP API as-is.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExamplesList()
		},
	}

	cmd.AddCommand(c.examplesShowCommand())
	cmd.AddCommand(c.examplesWriteCommand())

	return cmd
}

// runExamplesList prints one line per bundled example.
func runExamplesList() error {
	for _, name := range step.ExampleNames() {
		data, err := step.Example(name)
		if err != nil {
			continue
		}
		s, err := step.Parse(data)
		if err != nil {
			continue
		}
		printKeyValue(name, s.Title())
	}
	printNewline()
	printNextStep("Explain one", "flowstep explain --example step1")
	return nil
}

// examplesShowCommand creates the "examples show" subcommand.
func (c *CLI) examplesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "show [name]",
		Short:     "Print a bundled payload to stdout",
		ValidArgs: step.ExampleNames(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := step.Example(args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

// examplesWriteCommand creates the "examples write" subcommand.
func (c *CLI) examplesWriteCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "write [name]",
		Short:     "Write a bundled payload to a file",
		ValidArgs: step.ExampleNames(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			data, err := step.Example(name)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = name + ".json"
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess("Wrote %s", name)
			printFile(path)
			printNewline()
			printNextStep("Explain", "flowstep explain "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")

	return cmd
}
