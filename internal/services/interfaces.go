package services

import (
	"context"

	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
	"github.com/somnathbasteai/jeni-bot/internal/models"
	"github.com/somnathbasteai/jeni-bot/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// RecordServicer is the record store: the write side used by the mutation
// executor, the read side used by the context aggregator, and the chat log.
type RecordServicer interface {
	interpreter.Store
	lifecontext.Source

	// SessionHistory returns up to limit turns of one session, oldest first.
	SessionHistory(ctx context.Context, userID, sessionID string, limit int) ([]models.ChatMessage, error)
	AppendTurns(ctx context.Context, turns []models.ChatMessage) error
	ListSession(ctx context.Context, userID, sessionID string, page pagination.PageRequest) (*pagination.PageResponse[models.ChatMessage], error)
}

// EntryServicer applies mutations from any surface and audits each write.
type EntryServicer interface {
	Submit(ctx context.Context, userID, source string, m interpreter.Mutation) (*interpreter.Result, error)
}

// ChatServicer runs conversation turns.
type ChatServicer interface {
	Send(ctx context.Context, userID, sessionID, message string) (*ChatReply, error)
	Session(ctx context.Context, userID, sessionID string, page pagination.PageRequest) (*pagination.PageResponse[models.ChatMessage], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, source string, changes map[string]interface{})
}
