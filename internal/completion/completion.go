// Package completion talks to the generative completion service.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/somnathbasteai/jeni-bot/internal/config"
	"github.com/somnathbasteai/jeni-bot/internal/logger"
)

// Role tags a message for the completion service.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is one completion call: the system instruction, prior turns oldest
// first, and the new user message. Zero generation parameters mean the
// client's configured defaults.
type Request struct {
	System      string
	History     []Message
	Message     string
	Temperature float64
	MaxTokens   int
}

// Messages flattens the request into system, history, then the new message.
func (r Request) Messages() []Message {
	out := make([]Message, 0, len(r.History)+2)
	if r.System != "" {
		out = append(out, Message{Role: RoleSystem, Content: r.System})
	}
	out = append(out, r.History...)
	return append(out, Message{Role: RoleUser, Content: r.Message})
}

// Completer generates a reply. Any error is total failure: callers fall back
// rather than retry.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Model is the identifier reported to chat clients on success.
	Model() string
}

// ErrNotConfigured is returned by the disabled completer.
var ErrNotConfigured = errors.New("completion: no API key configured")

// ErrEmptyCompletion is returned when the service answers without text.
var ErrEmptyCompletion = errors.New("completion: empty response")

// StatusError reports a non-success status from the completion service.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
}

// New builds the completer selected by cfg. Without an API key every call
// fails fast so the chat path falls back.
func New(cfg config.CompletionConfig) (Completer, error) {
	if cfg.APIKey == "" {
		logger.Get().Warnw("No completion API key configured, replies will use the fallback responder",
			"provider", cfg.Provider)
		return Disabled{model: cfg.Model}, nil
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(context.Background(), cfg)
	default:
		return NewOpenAI(cfg, nil), nil
	}
}

// Disabled always fails with ErrNotConfigured.
type Disabled struct {
	model string
}

func (d Disabled) Complete(context.Context, Request) (string, error) { return "", ErrNotConfigured }
func (d Disabled) Model() string                                     { return d.model }

// withTimeout bounds ctx when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}

func orFloat(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
