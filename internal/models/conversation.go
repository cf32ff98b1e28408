package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation statuses. A conversation starts pending and is moved to
// accepted or declined exactly once, by the invited helper.
const (
	ConversationPending  = "pending"
	ConversationAccepted = "accepted"
	ConversationDeclined = "declined"
)

// Conversation represents a help-offer thread between the owner of a help
// request and one helper. The unique index over (help_request_id, helper_id)
// is what makes duplicate creation fail closed under concurrent requests.
type Conversation struct {
	// ID is the unique identifier for the conversation (UUID).
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// HelpRequestID is the help request this conversation is attached to.
	HelpRequestID string `gorm:"type:uuid;not null;uniqueIndex:idx_request_helper" json:"help_request_id"`
	// HelperID is the user who offered to help.
	HelperID string `gorm:"type:uuid;not null;uniqueIndex:idx_request_helper" json:"helper_id"`
	// RequesterID is the owner of the help request.
	RequesterID string `gorm:"type:uuid;not null;index" json:"requester_id"`
	// Status is one of pending, accepted, declined.
	Status string `gorm:"type:text;not null;default:'pending'" json:"status"`
	// CreatedAt is the timestamp when the conversation was created.
	CreatedAt time.Time `json:"created_at"`
	// LastMessageAt tracks the most recent message, for ordering lists.
	LastMessageAt time.Time `gorm:"index" json:"last_message_at"`
}

// BeforeCreate generates a UUID for the conversation if one is not set yet.
func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	return userID == c.RequesterID || userID == c.HelperID
}

// OtherParticipant returns the participant opposite to userID. It returns an
// empty string when userID is not a participant at all.
func (c *Conversation) OtherParticipant(userID string) string {
	switch userID {
	case c.RequesterID:
		return c.HelperID
	case c.HelperID:
		return c.RequesterID
	}
	return ""
}
