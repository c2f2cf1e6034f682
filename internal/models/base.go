package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook generates a time-ordered UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.ID = id.String()
	}
	return nil
}

// RecordID returns the primary key.
func (b *Base) RecordID() string { return b.ID }

// Owned is embedded by records that belong to exactly one user and carry no
// natural uniqueness constraint beyond their ID.
type Owned struct {
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
}

// SetOwner scopes the record to a user.
func (o *Owned) SetOwner(userID string) { o.UserID = userID }

func (o *Owned) sealed() {}
