package models

// ChatRole identifies who produced a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one append-only turn of a chat session.
type ChatMessage struct {
	Base
	UserID    string   `gorm:"type:uuid;not null;index:idx_chat_user_session" json:"user_id"`
	SessionID string   `gorm:"size:64;not null;index:idx_chat_user_session" json:"session_id"`
	Role      ChatRole `gorm:"not null" json:"role"`
	Message   string   `gorm:"type:text;not null" json:"message"`
	ModelUsed string   `json:"model_used"`
	Intent    string   `json:"intent,omitempty"`
}

func (ChatMessage) TableName() string { return "chat_history" }
