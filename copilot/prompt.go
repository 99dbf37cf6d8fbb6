package copilot

import (
	"fmt"
	"strings"
)

const (
	// historyWindow is how many trailing turns of a project's conversation
	// are replayed into the system prompt.
	historyWindow = 4
	// turnContentLimit caps each replayed turn's content.
	turnContentLimit = 200
)

// Composer assembles the system-level instruction content for a chat call
// from the persona template, the style profile and recent history.
type Composer struct {
	personas Personas
}

func NewComposer(personas Personas) *Composer {
	return &Composer{personas: personas}
}

// Compose concatenates persona, style block and history block, separated by
// blank lines. Empty blocks are skipped; with no history the history block
// is omitted entirely.
func (c *Composer) Compose(mode Mode, profile StyleProfile, history []ConversationTurn) string {
	blocks := []string{
		c.personas.For(mode),
		styleBlock(profile),
		historyBlock(history),
	}
	var nonEmpty []string
	for _, b := range blocks {
		if b != "" {
			nonEmpty = append(nonEmpty, b)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

func styleBlock(profile StyleProfile) string {
	var sb strings.Builder
	sb.WriteString("Style preferences:\n")
	sb.WriteString(fmt.Sprintf("- Tone: %s\n", profile.Tone))
	sb.WriteString(fmt.Sprintf("- Detail: %s\n", profile.Detail))
	sb.WriteString(fmt.Sprintf("- Emojis: %s\n", profile.Emojis))
	sb.WriteString(fmt.Sprintf("- Formatting: %s\n", profile.Formatting))
	sb.WriteString("You must respect these preferences in every reply.")
	return sb.String()
}

func historyBlock(history []ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var sb strings.Builder
	sb.WriteString("Recent conversation:")
	for _, turn := range history {
		sb.WriteString(fmt.Sprintf("\n[%s] %s", turn.Role, truncate(turn.Content, turnContentLimit)))
	}
	return sb.String()
}
