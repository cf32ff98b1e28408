// Package storage is the single place application state is mutated. Every
// mutating method runs as one database transaction, so each call is an
// indivisible unit: request handlers are stateless and hold no locks, and all
// invariants (duplicate-pair prevention, single resolution of a report) are
// enforced inside the transaction boundary, never by read-then-write from the
// caller's side.
package storage

import (
	"context"
	"errors"
	"time"

	"careline/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Business-rule outcomes. These are expected results, returned rather than
// logged; callers translate them into wire error codes.
var (
	ErrNotFound           = errors.New("record not found")
	ErrConversationExists = errors.New("conversation already exists for this help request and helper")
	ErrForbidden          = errors.New("user is not a participant of this conversation")
	ErrConversationClosed = errors.New("conversation has been declined")
	ErrInvalidTransition  = errors.New("conversation status transition not allowed")
	ErrAlreadyProcessed   = errors.New("report has already been processed")
)

// UserStore is the user-scoped entry point: every method takes the acting
// user and enforces participation itself, so a handler can never leak another
// user's rows by passing the wrong ID.
type UserStore interface {
	CreateConversation(helpRequestID, helperID, initialMessage string) (*models.Conversation, *models.Message, error)
	AppendMessage(p AppendMessageParams) (*models.Message, error)
	GetConversation(conversationID, userID string) (*models.Conversation, []models.Message, error)
	ListConversations(userID, status string) ([]ConversationSummary, error)
	MarkConversationRead(conversationID, readerID string) (*models.Conversation, int64, error)
	TransitionConversation(conversationID, actorID, target string) (*models.Conversation, error)

	FileReport(report *models.MessageReport) (*models.MessageReport, *models.Message, bool, error)

	ActiveRestriction(userID string) (*models.UserRestriction, error)
	CountMessagesSince(senderID string, since time.Time) (int64, error)

	PublishEvent(ev models.Event) error
}

// AdminStore is the privileged entry point. It is reachable only behind the
// admin middleware and the operator CLI, never from user-scoped handlers.
type AdminStore interface {
	PendingReports(limit, offset int) ([]QueueItem, error)
	QueueStats() (*QueueStats, error)
	ResolveReport(p ResolveReportParams) (*ResolveOutcome, error)
	SenderReportCounts(userID string) (total, verified int64, err error)
	ApplyRestriction(p RestrictionParams) error
}

// AppendMessageParams carries one message append. Flagged/Categories come
// from content screening and are persisted with the message itself.
type AppendMessageParams struct {
	ConversationID string
	SenderID       string
	Content        string
	MessageType    string
	Flagged        bool
	Categories     []string
}

// ConversationSummary is one row of a user's conversation list.
type ConversationSummary struct {
	Conversation       models.Conversation `json:"conversation"`
	LastMessage        *models.Message     `json:"last_message,omitempty"`
	UnreadCount        int64               `json:"unread_count"`
	OtherParticipantID string              `json:"other_participant_id"`
}

// QueueItem is one pending report joined with its message and context.
type QueueItem struct {
	Report           models.MessageReport `json:"report"`
	Message          models.Message       `json:"message"`
	HelpRequestTitle string               `json:"help_request_title,omitempty"`
}

// QueueStats summarizes moderation throughput for the dashboard.
type QueueStats struct {
	TotalPending      int64 `json:"total_pending"`
	ProcessedToday    int64 `json:"total_processed_today"`
	DismissedToday    int64 `json:"total_dismissed_today"`
	ActionsTakenToday int64 `json:"total_actions_taken_today"`
}

// ResolveReportParams carries one admin resolution.
type ResolveReportParams struct {
	ReportID string
	AdminID  string
	Action   string
	Notes    string
}

// ResolveOutcome reports what the resolution transaction actually did.
type ResolveOutcome struct {
	Report models.MessageReport `json:"report"`
	// SanctionedUserID is the message sender the action was applied to,
	// empty for dismissals.
	SanctionedUserID string `json:"sanctioned_user_id,omitempty"`
}

// RestrictionParams carries one sanction application.
type RestrictionParams struct {
	UserID             string
	Level              string
	Reason             string
	AppliedBy          string
	ExpiresAt          *time.Time
	MessageLimitPerDay int
}

// Service implements UserStore and AdminStore over PostgreSQL and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService constructs the storage service. The redis client may be nil for
// offline tooling (the operator CLI does not publish events).
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
