package step

import (
	"fmt"
	"strconv"
	"strings"
)

// PathString renders the augmenting path as "S→A → A→T". An empty path
// yields an empty string; joining is not special-cased.
func (s Step) PathString() string {
	segments := make([]string, len(s.AugmentingPath))
	for i, seg := range s.AugmentingPath {
		segments[i] = seg.From + "→" + seg.To
	}
	return strings.Join(segments, " → ")
}

// Explanation narrates the step in one paragraph.
//
// Terminal steps (PathCapacity 0) get the closing message naming the final
// maximum flow and the min-cut interpretation. All other steps describe
// the augmenting path, its bottleneck capacity, and the new running total.
func (s Step) Explanation() string {
	if s.IsTerminal() {
		return fmt.Sprintf(
			"No augmenting path found. The maximum flow is %s. The minimum cut is determined by the nodes reachable from %s in the residual graph.",
			FormatAmount(s.MaxFlow), SourceID)
	}
	return fmt.Sprintf(
		"Augmenting path: %s. Bottleneck capacity: %s. The maximum flow is now %s.",
		s.PathString(), FormatAmount(s.PathCapacity), FormatAmount(s.MaxFlow))
}

// Title is the one-line summary used in listings and pickers.
func (s Step) Title() string {
	if s.IsTerminal() {
		return fmt.Sprintf("Step %d: algorithm terminates", s.Number)
	}
	return fmt.Sprintf("Step %d: augment along %s", s.Number, s.PathString())
}

// FormatAmount prints a flow or capacity value without trailing zeros, so
// whole amounts read as "4" rather than "4.000000".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
