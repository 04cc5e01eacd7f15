package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Veraticus/edubridge/internal/llm"
	"github.com/Veraticus/edubridge/internal/model"
)

// Fixed replies shown instead of model output.
const (
	EmptyResponseMessage = "I couldn't find a specific recommendation. Could you try rephrasing your search?"
	UnavailableMessage   = "The AI assistant is currently unavailable. Please use the manual filters to find courses."
)

// Answer is the outcome of one question. Text is always displayable.
type Answer struct {
	Text string
	// Fallback is set when Text is one of the fixed replies.
	Fallback bool
	// Err is the underlying failure, if any. It is informational only.
	Err error
}

// Bridge sends questions with a catalog snapshot to a text-generation client.
type Bridge struct {
	client llm.Client
	logger *slog.Logger
}

// NewBridge creates a bridge. A nil client yields a bridge that always
// answers with UnavailableMessage.
func NewBridge(client llm.Client, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{client: client, logger: logger}
}

// Ask makes exactly one request. It never fails: errors become
// UnavailableMessage and empty output becomes EmptyResponseMessage.
func (b *Bridge) Ask(ctx context.Context, query string, courses []model.Course, rate float64) Answer {
	if b.client == nil {
		return Answer{Text: UnavailableMessage, Fallback: true, Err: ErrNoClient}
	}

	resp, err := b.client.Generate(ctx, llm.Request{
		System: SystemPrompt(courses, rate),
		Prompt: query,
	})
	if err != nil {
		b.logger.Error("assistant request failed", "error", err)
		return Answer{Text: UnavailableMessage, Fallback: true, Err: err}
	}

	if strings.TrimSpace(resp.Text) == "" {
		b.logger.Warn("assistant returned an empty response")
		return Answer{Text: EmptyResponseMessage, Fallback: true}
	}

	return Answer{Text: resp.Text}
}
