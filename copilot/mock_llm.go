package copilot

import (
	"context"
	"strings"
)

// MockLLM is a placeholder client for local runs without a model backend.
// It answers router prompts with a valid classification and everything else
// with a canned reply echoing the request.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if prompt.System == routerInstruction {
		return `{"mode": "general"}`, nil
	}
	var sb strings.Builder
	sb.WriteString("Mock reply. The request was:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
