package message

import (
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/sportlink/internal/user"
)

type Message struct {
	gorm.Model
	SenderID    uint       `gorm:"not null;index" json:"sender_id"`
	RecipientID uint       `gorm:"not null;index" json:"recipient_id"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// Conversation summarizes a chat with one partner: the latest message and how
// many of their messages the caller has not read yet.
type Conversation struct {
	Partner     user.Identity `json:"partner"`
	LastMessage string        `json:"last_message"`
	LastSentAt  time.Time     `json:"last_sent_at"`
	UnreadCount int64         `json:"unread_count"`
}
