// internal/domain/chat/entity.go
package chat

import (
	"time"
)

// ConversationStatus represents the open/closed state of a support thread
type ConversationStatus string

const (
	ConversationStatusOpen   ConversationStatus = "open"
	ConversationStatusClosed ConversationStatus = "closed"
)

// Conversation is a per-user support thread. A user has at most one open
// conversation at a time; opening looks an existing one up before creating.
type Conversation struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"not null;index" json:"user_id"`
	Status    ConversationStatus `gorm:"not null;default:'open'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"messages,omitempty"`
}

// Message is one append-only entry in a conversation, ordered by its
// server-assigned creation time.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	FromSupport    bool      `gorm:"default:false" json:"from_support"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName overrides
func (Conversation) TableName() string { return "conversations" }
func (Message) TableName() string      { return "messages" }
