package flow

import (
	"fmt"
	"strings"
)

// historyWindowSize bounds how many recent turns reach a prompt. Older turns
// are dropped, never summarized.
const historyWindowSize = 6

// maxTurnChars caps each rendered turn so a single long message cannot crowd
// the prompt.
const maxTurnChars = 200

// Window returns the most recent n turns in chronological order. It never
// allocates when the history already fits.
func Window(history []Turn, n int) []Turn {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// renderHistory flattens a window of turns into the plain-text block the
// prompts expect. Empty history renders as an explicit marker so the model
// does not invent prior context.
func renderHistory(history []Turn) string {
	window := Window(history, historyWindowSize)
	if len(window) == 0 {
		return "(no prior conversation)"
	}
	var b strings.Builder
	for _, turn := range window {
		content := turn.Content
		if len(content) > maxTurnChars {
			content = content[:maxTurnChars] + "..."
		}
		label := "User"
		if turn.Role == RoleAssistant {
			label = "Assistant"
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", label, content))
	}
	return strings.TrimRight(b.String(), "\n")
}
