package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/somnathbasteai/jeni-bot/internal/completion"
	apperrors "github.com/somnathbasteai/jeni-bot/internal/errors"
	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
	"github.com/somnathbasteai/jeni-bot/internal/logger"
	"github.com/somnathbasteai/jeni-bot/internal/models"
	"github.com/somnathbasteai/jeni-bot/internal/pagination"
)

// Reply sources reported in ChatReply.Model besides the completion model id.
const (
	ModelDataEngine = "data-engine"
	ModelFallback   = "fallback"
)

// HistoryTurns is how many prior turns of a session reach the completion service.
const HistoryTurns = 20

// MaxMessageLength caps one user message, in runes.
const MaxMessageLength = 4000

// ChatReply is the outcome of one turn.
type ChatReply struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
	Model     string `json:"model"`
	Intent    string `json:"-"`
}

// chatService orchestrates a turn: interpret, otherwise converse.
type chatService struct {
	records    RecordServicer
	entries    EntryServicer
	router     *interpreter.Router
	aggregator *lifecontext.Aggregator
	completer  completion.Completer
	source     string
	now        func() time.Time
}

// ChatOption customizes a chat service.
type ChatOption func(*chatService)

// WithAuditSource tags writes made by chat commands with source instead of SourceChat.
func WithAuditSource(source string) ChatOption {
	return func(s *chatService) { s.source = source }
}

// NewChatService creates a new ChatServicer.
func NewChatService(records RecordServicer, entries EntryServicer, router *interpreter.Router, aggregator *lifecontext.Aggregator, completer completion.Completer, opts ...ChatOption) ChatServicer {
	s := &chatService{
		records:    records,
		entries:    entries,
		router:     router,
		aggregator: aggregator,
		completer:  completer,
		source:     SourceChat,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send handles one user message. Recognized commands are applied without
// calling the completion service; anything else gets a snapshot-grounded
// reply, or the fallback when the service fails.
func (s *chatService) Send(ctx context.Context, userID, sessionID, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, apperrors.ErrMessageTooLong
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	outcome := s.router.Route(message)
	var reply, model string
	switch {
	case outcome.Hint != "":
		reply, model = outcome.Hint, ModelDataEngine
	case outcome.Matched():
		reply, model = s.apply(ctx, userID, outcome.Mutation), ModelDataEngine
	default:
		reply, model = s.converse(ctx, userID, sessionID, message)
	}

	s.persist(ctx, userID, sessionID, message, reply, model, string(outcome.Intent))
	logger.Get().Infow("Chat turn",
		"user_id", userID,
		"session_id", sessionID,
		"intent", outcome.Intent,
		"model", model,
	)

	return &ChatReply{Reply: reply, SessionID: sessionID, Model: model, Intent: string(outcome.Intent)}, nil
}

// Session lists the turns of one of the user's sessions.
func (s *chatService) Session(ctx context.Context, userID, sessionID string, page pagination.PageRequest) (*pagination.PageResponse[models.ChatMessage], error) {
	return s.records.ListSession(ctx, userID, sessionID, page)
}

func (s *chatService) apply(ctx context.Context, userID string, m interpreter.Mutation) string {
	res, err := s.entries.Submit(ctx, userID, s.source, m)
	if err != nil {
		logger.Get().Warnw("Chat command write failed", "user_id", userID, "intent", m.Intent(), "error", err)
		return storeFailureReply(err)
	}
	return res.Message
}

func (s *chatService) converse(ctx context.Context, userID, sessionID, message string) (string, string) {
	snap := s.aggregator.Build(ctx, userID)

	history, err := s.records.SessionHistory(ctx, userID, sessionID, HistoryTurns)
	if err != nil {
		logger.Get().Warnw("Chat history unavailable", "user_id", userID, "session_id", sessionID, "error", err)
		history = nil
	}

	text, err := s.completer.Complete(ctx, completion.Request{
		System:  lifecontext.Compile(snap),
		History: toCompletionMessages(history),
		Message: message,
	})
	if err != nil {
		logger.Get().Warnw("Completion failed, using fallback reply", "user_id", userID, "error", err)
		return lifecontext.Fallback(message, snap), ModelFallback
	}
	return text, s.completer.Model()
}

// persist appends the user turn and the reply in one insert. The reply is
// still returned when the log write fails.
func (s *chatService) persist(ctx context.Context, userID, sessionID, message, reply, model, intent string) {
	at := s.now().UTC()
	turns := []models.ChatMessage{
		{
			Base:      models.Base{CreatedAt: at},
			UserID:    userID,
			SessionID: sessionID,
			Role:      models.ChatRoleUser,
			Message:   message,
			ModelUsed: model,
			Intent:    intent,
		},
		{
			Base:      models.Base{CreatedAt: at.Add(time.Microsecond)},
			UserID:    userID,
			SessionID: sessionID,
			Role:      models.ChatRoleAssistant,
			Message:   reply,
			ModelUsed: model,
			Intent:    intent,
		},
	}
	if err := s.records.AppendTurns(ctx, turns); err != nil {
		logger.Get().Errorw("Failed to save chat turn", "user_id", userID, "session_id", sessionID, "error", err)
	}
}

func toCompletionMessages(turns []models.ChatMessage) []completion.Message {
	out := make([]completion.Message, 0, len(turns))
	for _, t := range turns {
		role := completion.RoleUser
		if t.Role == models.ChatRoleAssistant {
			role = completion.RoleAssistant
		}
		out = append(out, completion.Message{Role: role, Content: t.Message})
	}
	return out
}

// storeFailureReply surfaces the store's own error text to the user.
func storeFailureReply(err error) string {
	var we *interpreter.WriteError
	if !errors.As(err, &we) {
		return "❌ " + err.Error()
	}
	detail := we.Err.Error()
	var appErr *apperrors.AppError
	if errors.As(we.Err, &appErr) && appErr.Internal != nil {
		detail = appErr.Internal.Error()
	}
	return fmt.Sprintf("❌ Could not save %s: %s", strings.ReplaceAll(string(we.Kind), "_", " "), detail)
}
