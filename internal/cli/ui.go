package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flowstep/pkg/step"
)

// =============================================================================
// Color Palette
// =============================================================================

// The terminal palette mirrors the drawing styles: teal accents the
// augmenting path, green marks completed work, amber and red mark trouble.
var (
	colorCyan   = lipgloss.Color("36")  // Teal - augmenting path, primary accent
	colorGreen  = lipgloss.Color("35")  // Green - success, cache hits
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links and commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for step headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for augmenting-path edges and paths.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for flow and capacity amounts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles & Icons
// =============================================================================

// keyColumnWidth aligns the labels printed by printKeyValue.
const keyColumnWidth = 12

var (
	styleOK           = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail         = lipgloss.NewStyle().Foreground(colorRed)
	styleCaution      = lipgloss.NewStyle().Foreground(colorYellow)
	styleNote         = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinnerFrame = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand      = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey          = lipgloss.NewStyle().Foreground(colorGray).Width(keyColumnWidth)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// status prints a message behind a styled status icon.
func status(iconStyle lipgloss.Style, icon, msg string) {
	fmt.Println(iconStyle.Render(icon) + " " + msg)
}

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	status(styleOK, iconSuccess, fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	status(styleFail, iconError, fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	status(styleCaution, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	status(styleNote, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// File & Key-Value Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Network Output
// =============================================================================

// formatEdge renders one edge as "A → B  3/5" (flow over capacity).
func formatEdge(e step.Edge) string {
	return fmt.Sprintf("%s %s %s  %s/%s", e.From, iconArrow, e.To,
		step.FormatAmount(e.Flow), step.FormatAmount(e.Capacity))
}

// printEdge prints an edge line, accenting edges on the augmenting path.
func printEdge(e step.Edge, onPath bool) {
	if onPath {
		fmt.Println("  " + StyleHighlight.Render(formatEdge(e)) + " " + StyleSuccess.Render("on path"))
		return
	}
	fmt.Println("  " + StyleDim.Render(formatEdge(e)))
}

// statsLine assembles the summary shown after a render: network size, how
// many edges the augmenting path uses, and whether the result came from
// cache. Zero counts are omitted so terminal steps stay short.
func statsLine(nodeCount, edgeCount, pathLen int, cached bool) string {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", nodeCount))
	}
	if edgeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d edges", edgeCount))
	}
	if pathLen > 0 {
		parts = append(parts, fmt.Sprintf("%d on path", pathLen))
	}
	for i, part := range parts {
		parts[i] = StyleDim.Render(part)
	}
	badge := styleNote.Render(iconFresh)
	if cached {
		badge = styleOK.Render(iconCached)
	}
	parts = append(parts, badge)
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// printStats prints the network statistics line.
func printStats(nodeCount, edgeCount, pathLen int, cached bool) {
	fmt.Println(statsLine(nodeCount, edgeCount, pathLen, cached))
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
