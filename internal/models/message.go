package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // потрібен для pq.StringArray
	"gorm.io/gorm"
)

// Message types and delivery statuses.
const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system"

	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"

	ModerationApproved = "approved"
	ModerationHidden   = "hidden"
)

// Message is one entry in a conversation's append-only ledger. A message
// belongs to exactly one conversation for its entire lifetime and is never
// physically deleted; moderation may only hide it.
type Message struct {
	// ID is the unique identifier for the message (UUID).
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// Seq is a monotonically increasing insertion sequence. It breaks
	// ordering ties between messages sharing a creation timestamp.
	Seq int64 `gorm:"autoIncrement;uniqueIndex:idx_message_seq" json:"seq"`
	// ConversationID is the conversation that owns this message.
	ConversationID string `gorm:"type:uuid;not null;index:idx_conversation_msg" json:"conversation_id"`
	// SenderID is the participant who wrote the message.
	SenderID string `gorm:"type:uuid;not null" json:"sender_id"`
	// RecipientID is the other participant, denormalized so read-marking and
	// realtime routing need no join.
	RecipientID string `gorm:"type:uuid;not null;index" json:"recipient_id"`
	// Content is the message body, bounded to 1000 characters.
	Content string `gorm:"type:text;not null" json:"content"`
	// MessageType is "text" for user messages, "system" for lifecycle notes.
	MessageType string `gorm:"type:text;not null;default:'text'" json:"message_type"`
	// Status advances sent -> delivered -> read and never backwards.
	Status string `gorm:"type:text;not null;default:'sent'" json:"status"`
	// ReadAt is set once when the recipient marks the message read.
	ReadAt *time.Time `json:"read_at,omitempty"`
	// IsFlagged is set by content screening or by a moderation action.
	IsFlagged bool `gorm:"default:false" json:"is_flagged"`
	// FlaggedCategories are the screening categories that tripped.
	FlaggedCategories pq.StringArray `gorm:"type:text[]" json:"flagged_categories,omitempty"`
	// ModerationStatus is "approved" unless an admin hid the message.
	ModerationStatus string `gorm:"type:text;not null;default:'approved'" json:"moderation_status"`

	CreatedAt time.Time `gorm:"index:idx_conversation_msg" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the message if one is not set yet.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// IsUnreadBy reports whether the message is still unread from the point of
// view of reader. Only the recipient can have unread state.
func (m *Message) IsUnreadBy(reader string) bool {
	return m.RecipientID == reader && m.Status != MessageStatusRead
}
