package copilot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

const routerInstruction = `You are a request router for a mechanical workshop assistant. Classify the user's message into exactly one mode:
- "create": the user wants to design or build a contraption
- "pro": the user wants to optimize an existing setup (throughput, stress, gear ratios, lag)
- "general": anything else
Reply with a JSON object only, no prose: {"mode": "create"}`

// Keyword fallback vocabularies, checked create-first.
var (
	createKeywords = []string{
		"build", "design", "contraption", "factory", "machine", "farm",
		"gearbox", "conveyor", "assemble", "automate",
	}
	proKeywords = []string{
		"optimize", "optimise", "throughput", "stress", "lag",
		"performance", "efficien", "ratio", "tune", "bottleneck",
	}
)

// Classifier resolves which mode should answer a message: model-first, with
// a pure keyword fallback. Classify never fails.
type Classifier struct {
	llm    LLMClient
	logger *slog.Logger
}

func NewClassifier(llm LLMClient, logger *slog.Logger) *Classifier {
	return &Classifier{llm: llm, logger: logger}
}

// Classify returns the requested mode untouched unless it is "auto" (or
// empty, which means the same). In the auto case it asks the model and falls
// back to keywords on any failure of that path.
func (c *Classifier) Classify(ctx context.Context, message, requested string) Mode {
	if requested != "" && requested != ModeAuto {
		return Mode(requested)
	}

	raw, err := c.llm.Complete(ctx, Prompt{System: routerInstruction, User: message})
	if err == nil {
		if mode, ok := extractMode(raw); ok {
			return mode
		}
		err = fmt.Errorf("unrecognized router reply %q", truncate(raw, 120))
	}

	mode := KeywordMode(message)
	c.logger.Warn("mode classification fell back to keywords",
		"mode", mode, "error", err)
	return mode
}

// extractMode pulls a valid mode out of the router model's reply, tolerating
// markdown code fences around the JSON.
func extractMode(raw string) (Mode, bool) {
	cleaned := stripFences(raw)
	if !gjson.Valid(cleaned) {
		return "", false
	}
	switch mode := Mode(gjson.Get(cleaned, "mode").String()); mode {
	case ModeCreate, ModePro, ModeGeneral:
		return mode, true
	}
	return "", false
}

// KeywordMode is the deterministic fallback heuristic over the lowercased
// message. Pure and total.
func KeywordMode(message string) Mode {
	lower := strings.ToLower(message)
	for _, kw := range createKeywords {
		if strings.Contains(lower, kw) {
			return ModeCreate
		}
	}
	for _, kw := range proKeywords {
		if strings.Contains(lower, kw) {
			return ModePro
		}
	}
	return ModeGeneral
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
