package flow

import (
	"strings"

	"clinic-assist-be/internal/constant"
)

// Normalize converts any agent output into the canonical reply shape. The
// result's Data is never empty: a blank text is replaced with a generic
// apology. Meta never leaves the graph.
func Normalize(output AgentOutput) Reply {
	text := collapseWhitespace(output.Text)
	if text == "" {
		text = constant.ApologyMessage
	}
	return Reply{Type: "message", Data: text}
}

// collapseWhitespace trims the text, squeezes runs of horizontal whitespace
// within each line and drops blank lines.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
