package models

import "time"

// Help request lifecycle statuses.
const (
	HelpRequestOpen       = "open"
	HelpRequestInProgress = "in_progress"
	HelpRequestClosed     = "closed"
)

// HelpRequest is the marketplace posting a conversation hangs off. The full
// posting (description, category taxonomy, location) is owned by the main
// platform; messaging only needs the owner and enough context for the
// moderation queue.
type HelpRequest struct {
	// ID is the unique identifier for the help request (UUID).
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// RequesterID is the user who posted the request.
	RequesterID string `gorm:"type:uuid;not null;index" json:"requester_id"`
	// Title is shown alongside reported messages for context.
	Title string `gorm:"type:text;not null" json:"title"`
	// Category is the request category (groceries, transport, ...).
	Category string `gorm:"type:text" json:"category"`
	// Status is one of open, in_progress, closed.
	Status string `gorm:"type:text;not null;default:'open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
