package copilot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPersonas() Personas {
	return Personas{
		ModeCreate:  "CREATE PERSONA",
		ModePro:     "PRO PERSONA",
		ModeGeneral: "GENERAL PERSONA",
	}
}

func TestComposeSelectsPersona(t *testing.T) {
	c := NewComposer(testPersonas())
	out := c.Compose(ModePro, DefaultStyleProfile(), nil)
	assert.True(t, strings.HasPrefix(out, "PRO PERSONA"))
	assert.NotContains(t, out, "CREATE PERSONA")
}

func TestComposeStyleBlockListsAllFields(t *testing.T) {
	c := NewComposer(testPersonas())
	profile := StyleProfile{Tone: "blunt", Detail: "exhaustive", Emojis: "never", Formatting: "plain"}
	out := c.Compose(ModeGeneral, profile, nil)

	assert.Contains(t, out, "- Tone: blunt")
	assert.Contains(t, out, "- Detail: exhaustive")
	assert.Contains(t, out, "- Emojis: never")
	assert.Contains(t, out, "- Formatting: plain")
	assert.Contains(t, out, "must respect these preferences")
}

func TestComposeOmitsHistoryBlockWhenEmpty(t *testing.T) {
	c := NewComposer(testPersonas())
	for _, history := range [][]ConversationTurn{nil, {}} {
		out := c.Compose(ModeCreate, DefaultStyleProfile(), history)
		assert.NotContains(t, out, "Recent conversation")
		assert.False(t, strings.HasSuffix(out, "\n\n"), "no trailing empty block")
	}
}

func TestComposeWindowsHistoryToLastFour(t *testing.T) {
	c := NewComposer(testPersonas())
	var history []ConversationTurn
	for i := 1; i <= 6; i++ {
		history = append(history, ConversationTurn{Role: RoleUser, Content: fmt.Sprintf("turn-%d", i)})
	}
	out := c.Compose(ModeCreate, DefaultStyleProfile(), history)

	assert.NotContains(t, out, "turn-1")
	assert.NotContains(t, out, "turn-2")
	for i := 3; i <= 6; i++ {
		assert.Contains(t, out, fmt.Sprintf("[user] turn-%d", i))
	}
	// Original order is preserved.
	require.Less(t, strings.Index(out, "turn-3"), strings.Index(out, "turn-6"))
}

func TestComposeTruncatesTurnContent(t *testing.T) {
	c := NewComposer(testPersonas())
	long := strings.Repeat("x", 500)
	out := c.Compose(ModeCreate, DefaultStyleProfile(), []ConversationTurn{
		{Role: RoleAssistant, Content: long},
	})

	assert.Contains(t, out, "[assistant] "+strings.Repeat("x", 200))
	assert.NotContains(t, out, strings.Repeat("x", 201))
}

func TestComposeSeparatesBlocksWithBlankLines(t *testing.T) {
	c := NewComposer(testPersonas())
	out := c.Compose(ModeGeneral, DefaultStyleProfile(), []ConversationTurn{
		{Role: RoleUser, Content: "hello"},
	})
	parts := strings.Split(out, "\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, "GENERAL PERSONA", parts[0])
	assert.True(t, strings.HasPrefix(parts[1], "Style preferences:"))
	assert.True(t, strings.HasPrefix(parts[2], "Recent conversation:"))
}
