// File: internal/domain/chat.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSessionTitle is used when a session is created without a title.
const DefaultSessionTitle = "New Chat"

// ChatSession represents a single conversation thread owned by one user.
type ChatSession struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:text;not null;index"` // identity-provider subject of the owner
	Title     string    `json:"title" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// BeforeCreate assigns a time-ordered id so that id order follows insertion order.
func (s *ChatSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		s.ID = id
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return nil
}
