package models

// AuditLog records every write made on a user's behalf, from chat or forms.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"type:uuid" json:"resource_id"`
	Source       string `json:"source"`
	Changes      string `json:"changes,omitempty"`
}

func (AuditLog) TableName() string { return "audit_logs" }
