package models

import "time"

// Realtime event types relayed to subscribed clients after a commit.
const (
	EventConversationCreated = "conversation_created"
	EventMessageSent         = "message_sent"
	EventStatusChanged       = "status_changed"
	EventMessagesRead        = "messages_read"
)

// Event is one committed-row change fanned out to a participant. Events are
// emitted only after the transaction that produced them commits, so a
// subscriber never observes partial state.
type Event struct {
	Type string `json:"type"`
	// RecipientID keys the fan-out; each event targets one participant.
	RecipientID    string `json:"recipient_id"`
	ConversationID string `json:"conversation_id"`
	// Message is present on message_sent and conversation_created events.
	Message *Message `json:"message,omitempty"`
	// Status is present on status_changed events.
	Status string `json:"status,omitempty"`
	// ReadCount is present on messages_read events.
	ReadCount int64     `json:"read_count,omitempty"`
	At        time.Time `json:"at"`
}
