package copilot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// noReplyPlaceholder stands in when the chat model returns no content.
const noReplyPlaceholder = "(no reply)"

// StyleSource supplies the current style profile (defaults on first use).
type StyleSource interface {
	Load() (StyleProfile, error)
}

// HistoryStore is the project conversation log. Appends create the project
// if it does not exist yet.
type HistoryStore interface {
	LoadProject(name string) (ProjectRecord, error)
	AppendConversation(name, role, content string) error
}

// Orchestrator drives one chat exchange: classify, compose, call the model,
// persist the turns.
type Orchestrator struct {
	llm        LLMClient
	classifier *Classifier
	composer   *Composer
	styles     StyleSource
	projects   HistoryStore
	logger     *slog.Logger
}

func NewOrchestrator(llm LLMClient, classifier *Classifier, composer *Composer,
	styles StyleSource, projects HistoryStore, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		llm:        llm,
		classifier: classifier,
		composer:   composer,
		styles:     styles,
		projects:   projects,
		logger:     logger,
	}
}

// HandleChat answers one user message. When projectName is non-empty the
// exchange is appended to that project's history, user turn first, and only
// after a reply was obtained.
func (o *Orchestrator) HandleChat(ctx context.Context, message, mode, projectName string) (ChatResult, error) {
	profile, err := o.styles.Load()
	if err != nil {
		return ChatResult{}, fmt.Errorf("load style profile: %w", err)
	}

	resolved := o.classifier.Classify(ctx, message, mode)

	var history []ConversationTurn
	if projectName != "" {
		record, err := o.projects.LoadProject(projectName)
		if err != nil {
			return ChatResult{}, fmt.Errorf("load project %q: %w", projectName, err)
		}
		history = record.Conversation
	}

	system := o.composer.Compose(resolved, profile, history)
	reply, err := o.llm.Complete(ctx, Prompt{System: system, User: message})
	if err != nil {
		return ChatResult{}, modelErr(err)
	}
	if strings.TrimSpace(reply) == "" {
		reply = noReplyPlaceholder
	}

	if projectName != "" {
		if err := o.projects.AppendConversation(projectName, RoleUser, message); err != nil {
			return ChatResult{}, fmt.Errorf("append user turn: %w", err)
		}
		if err := o.projects.AppendConversation(projectName, RoleAssistant, reply); err != nil {
			return ChatResult{}, fmt.Errorf("append assistant turn: %w", err)
		}
	}

	o.logger.Info("chat handled", "mode", resolved, "project", projectName)
	return ChatResult{Mode: resolved, Reply: reply}, nil
}
