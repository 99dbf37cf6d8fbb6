package copilot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is a scripted LLMClient shared by the package tests. Replies
// are consumed in order; the last one repeats.
type stubClient struct {
	replies []string
	err     error
	calls   int
	prompts []Prompt
}

func (s *stubClient) Complete(_ context.Context, p Prompt) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, p)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyExplicitModePassesThrough(t *testing.T) {
	llm := &stubClient{err: errors.New("should not be called")}
	c := NewClassifier(llm, testLogger())

	for _, mode := range []Mode{ModeCreate, ModePro, ModeGeneral} {
		got := c.Classify(context.Background(), "anything at all", string(mode))
		assert.Equal(t, mode, got)
	}
	assert.Zero(t, llm.calls, "explicit mode must not hit the model")
}

func TestClassifyAutoUsesModelReply(t *testing.T) {
	llm := &stubClient{replies: []string{`{"mode": "pro"}`}}
	c := NewClassifier(llm, testLogger())

	got := c.Classify(context.Background(), "how do I speed this up", ModeAuto)
	assert.Equal(t, ModePro, got)
	require.Equal(t, 1, llm.calls)
	assert.Equal(t, routerInstruction, llm.prompts[0].System)
}

func TestClassifyAutoStripsCodeFences(t *testing.T) {
	llm := &stubClient{replies: []string{"```json\n{\"mode\": \"create\"}\n```"}}
	c := NewClassifier(llm, testLogger())

	got := c.Classify(context.Background(), "anything", ModeAuto)
	assert.Equal(t, ModeCreate, got)
}

func TestClassifyFallsBackOnModelError(t *testing.T) {
	llm := &stubClient{err: errors.New("connection refused")}
	c := NewClassifier(llm, testLogger())

	got := c.Classify(context.Background(), "build a factory", ModeAuto)
	assert.Equal(t, ModeCreate, got)
}

func TestClassifyFallsBackOnGarbageReply(t *testing.T) {
	cases := []string{
		"sure, I'd say create!",
		`{"mode": "chaotic"}`,
		`{"other": true}`,
		"",
	}
	for _, reply := range cases {
		llm := &stubClient{replies: []string{reply}}
		c := NewClassifier(llm, testLogger())
		got := c.Classify(context.Background(), "what's the weather", ModeAuto)
		assert.Equal(t, ModeGeneral, got, "reply %q", reply)
	}
}

func TestClassifyNeverReturnsAuto(t *testing.T) {
	llm := &stubClient{err: errors.New("down")}
	c := NewClassifier(llm, testLogger())
	got := c.Classify(context.Background(), "", ModeAuto)
	assert.Contains(t, []Mode{ModeCreate, ModePro, ModeGeneral}, got)
}

func TestKeywordModeDeterministic(t *testing.T) {
	cases := map[string]Mode{
		"BUILD a factory":                 ModeCreate,
		"please design a cobble farm":     ModeCreate,
		"optimize my setup":               ModePro,
		"too much stress on the network":  ModePro,
		"what's a windmill?":              ModeGeneral,
		"":                                ModeGeneral,
		"build it, then optimize it":      ModeCreate, // create wins when both match
	}
	for message, want := range cases {
		assert.Equal(t, want, KeywordMode(message), "message %q", message)
		assert.Equal(t, KeywordMode(message), KeywordMode(message), "must be deterministic")
	}
}
