package copilot

import "context"

// LLMClient abstracts the model backend so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt is the message set sent to the model. System and History may be
// empty; single-prompt calls (the blueprint model) use only User.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// LLMSettings is the base configuration handed to concrete clients.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}
