package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/pkg/step"
	"github.com/matzehuels/flowstep/pkg/view"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for browsing examples interactively.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the bundled examples interactively",
		Long: `Browse the bundled examples interactively.

The tui command walks through the bundled Edmonds-Karp steps in the
terminal. It keeps one current view, exactly like a browser session
against the HTTP API: loading a step replaces the view, resetting
restores the initial prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

// runTUI loads the bundled examples and starts the bubbletea program.
func runTUI() error {
	entries, err := loadExampleEntries()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newStepBrowserModel(entries)).Run()
	return err
}

// exampleEntry pairs a bundled example name with its parsed step.
type exampleEntry struct {
	name string
	step step.Step
}

func loadExampleEntries() ([]exampleEntry, error) {
	names := step.ExampleNames()
	entries := make([]exampleEntry, 0, len(names))
	for _, name := range names {
		data, err := step.Example(name)
		if err != nil {
			return nil, err
		}
		s, err := step.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse example %s: %w", name, err)
		}
		entries = append(entries, exampleEntry{name: name, step: s})
	}
	return entries, nil
}

// =============================================================================
// StepBrowserModel - Interactive step walkthrough
// =============================================================================

// StepBrowserModel is the bubbletea model for the example walkthrough. It
// keeps the session semantics of the HTTP API: enter swaps the current
// view, r resets it to the initial prompt.
type StepBrowserModel struct {
	Entries     []exampleEntry
	Cursor      int
	Current     view.View
	ShowDetails bool
	ShowLegend  bool
}

// newStepBrowserModel creates a browser model showing the empty view.
func newStepBrowserModel(entries []exampleEntry) StepBrowserModel {
	return StepBrowserModel{
		Entries:     entries,
		Current:     view.Empty(),
		ShowDetails: true,
	}
}

func (m StepBrowserModel) Init() tea.Cmd {
	return nil
}

func (m StepBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Entries) > 0 {
				m.Current = view.FromStep(m.Entries[m.Cursor].step)
			}
		case "r":
			m.Current = view.Empty()
		case "d":
			m.ShowDetails = !m.ShowDetails
		case "l":
			m.ShowLegend = !m.ShowLegend
		}
	}
	return m, nil
}

func (m StepBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ load  r reset  d details  l legend  q quit"))
	b.WriteString("\n\n")

	for i, entry := range m.Entries {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + entry.step.Title()
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.Current.Explanation)
	b.WriteString("\n")

	if m.ShowDetails && !m.Current.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(m.detailsTable())
		b.WriteString("\n")
	}

	if m.ShowLegend {
		b.WriteString("\n")
		b.WriteString(legendLine())
		b.WriteString("\n")
	}

	if !m.Current.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  max flow: ") + StyleNumber.Render(step.FormatAmount(m.Current.Flow)))
		b.WriteString("\n")
	}

	return b.String()
}

// detailsTable renders the edge table with augmenting-path rows emphasized.
func (m StepBrowserModel) detailsTable() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, e := range m.Current.Edges {
		onPath := ""
		if m.Current.Highlights[step.EdgeKey(e.From, e.To)] {
			onPath = iconSuccess
		}
		rows = append(rows, []string{
			e.From, e.To,
			step.FormatAmount(e.Flow), step.FormatAmount(e.Capacity),
			onPath,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("From", "To", "Flow", "Capacity", "On Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(m.Current.Edges) {
				e := m.Current.Edges[row]
				if m.Current.Highlights[step.EdgeKey(e.From, e.To)] {
					return lipgloss.NewStyle().Foreground(colorGreen)
				}
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

// legendLine describes the colors used in the rendered drawings.
func legendLine() string {
	return strings.Join([]string{
		StyleSuccess.Render("■") + " " + listDimStyle.Render("augmenting path"),
		StyleNumber.Render("■") + " " + listDimStyle.Render("flow/capacity"),
		listNormalStyle.Render("■") + " " + listDimStyle.Render("network edge"),
	}, "  ")
}
