package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/flowstep/pkg/geom"
)

// EscapeXML escapes text for safe embedding in SVG attributes and
// content. Node IDs come from user payloads and may hold anything.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// HeadPoints formats an arrowhead polygon for an SVG points attribute.
func HeadPoints(head [3]geom.Point) string {
	return fmt.Sprintf("%.1f,%.1f %.1f,%.1f %.1f,%.1f",
		head[0].X, head[0].Y, head[1].X, head[1].Y, head[2].X, head[2].Y)
}

// Wrap breaks text into lines of at most maxChars characters, splitting
// on spaces. Words longer than maxChars get their own line rather than
// being cut. Used for the explanation paragraph, since SVG text does not
// wrap on its own.
func Wrap(text string, maxChars int) []string {
	if maxChars <= 0 || text == "" {
		return nil
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > maxChars {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
