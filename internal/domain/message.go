// File: internal/domain/message.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRole says who authored a message.
type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleModel MessageRole = "model"
)

// MessageType says how Content is to be interpreted.
type MessageType string

const (
	TypeText        MessageType = "text"
	TypeImage       MessageType = "image"
	TypeImagePrompt MessageType = "image_prompt"
)

func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleModel
}

func (t MessageType) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeImagePrompt:
		return true
	}
	return false
}

// ChatMessage is a single immutable entry in a session transcript.
type ChatMessage struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID   `json:"session_id" gorm:"type:uuid;not null;index"`
	UserID    string      `json:"user_id" gorm:"type:text;not null;index"`
	Role      MessageRole `json:"role" gorm:"type:text;not null"`
	Type      MessageType `json:"type" gorm:"type:text;not null"`
	Content   string      `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time   `json:"created_at" gorm:"not null;index"`

	// Session is declared only so the migrator emits the ON DELETE CASCADE foreign key.
	Session *ChatSession `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ChatMessage) TableName() string {
	return "messages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return nil
}
