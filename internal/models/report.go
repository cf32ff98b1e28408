package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report reasons a user can pick when filing a complaint.
const (
	ReportReasonSpam          = "spam"
	ReportReasonHarassment    = "harassment"
	ReportReasonInappropriate = "inappropriate"
	ReportReasonScam          = "scam"
	ReportReasonOther         = "other"
)

// Report statuses. A report is mutated exactly once, into one of the two
// terminal states, and is never deleted — resolved rows are the audit trail.
const (
	ReportPending     = "pending"
	ReportDismissed   = "dismissed"
	ReportActionTaken = "action_taken"
)

// Admin resolution actions.
const (
	ActionDismiss      = "dismiss"
	ActionHideMessage  = "hide_message"
	ActionWarnUser     = "warn_user"
	ActionRestrictUser = "restrict_user"
	ActionBanUser      = "ban_user"
)

// MessageReport is a user-filed complaint against one message. The unique
// index over (message_id, reported_by) makes duplicate filings idempotent.
type MessageReport struct {
	// ID is the unique identifier for the report (UUID).
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// MessageID is the reported message.
	MessageID string `gorm:"type:uuid;not null;uniqueIndex:idx_message_reporter" json:"message_id"`
	// ReportedBy is the user who filed the complaint.
	ReportedBy string `gorm:"type:uuid;not null;uniqueIndex:idx_message_reporter" json:"reported_by"`
	// Reason is one of the fixed reason codes.
	Reason string `gorm:"type:text;not null" json:"reason"`
	// Description is the reporter's free-text explanation.
	Description string `gorm:"type:text" json:"description,omitempty"`
	// Status is pending until an admin resolves the report.
	Status string `gorm:"type:text;not null;default:'pending';index" json:"status"`
	// ReviewedBy is the admin who resolved the report.
	ReviewedBy *string `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	// ReviewedAt is the resolution timestamp.
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	// ResolutionNotes are the admin's notes on the decision.
	ResolutionNotes string `gorm:"type:text" json:"resolution_notes,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID for the report if one is not set yet.
func (r *MessageReport) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// Resolved reports whether the report already reached a terminal state.
func (r *MessageReport) Resolved() bool {
	return r.Status != ReportPending
}

// Restriction levels, ordered by severity.
const (
	RestrictionNone      = "none"
	RestrictionLimited   = "limited"
	RestrictionSuspended = "suspended"
	RestrictionBanned    = "banned"
)

// UserRestriction is the current sanction applied to a user, one row per
// user. Expired restrictions are treated as none rather than deleted.
type UserRestriction struct {
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`
	// Level is one of none, limited, suspended, banned.
	Level string `gorm:"type:text;not null;default:'none'" json:"level"`
	// Reason is the human-readable reason shown to admins.
	Reason string `gorm:"type:text" json:"reason"`
	// AppliedBy is the admin (or "system") that applied the sanction.
	AppliedBy string `gorm:"type:text" json:"applied_by"`
	// ExpiresAt is nil for permanent sanctions.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// MessageLimitPerDay is 0 when the user cannot send at all.
	MessageLimitPerDay int `json:"message_limit_per_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the restriction is still in force at now.
func (u *UserRestriction) Active(now time.Time) bool {
	if u.Level == RestrictionNone {
		return false
	}
	if u.ExpiresAt != nil && now.After(*u.ExpiresAt) {
		return false
	}
	return true
}

// MessageAuditLog is an append-only record of moderation decisions. Rows are
// written in the same transaction as the decision they describe.
type MessageAuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// MessageID is set when the entry concerns a specific message.
	MessageID *string `gorm:"type:uuid;index" json:"message_id,omitempty"`
	// ReportID is set when the entry resolves a report.
	ReportID *string `gorm:"type:uuid;index" json:"report_id,omitempty"`
	// ActorID is the admin or system actor that took the action.
	ActorID string `gorm:"type:text;not null" json:"actor_id"`
	// Action is the moderation action taken.
	Action string `gorm:"type:text;not null" json:"action"`
	// TargetUserID is the sanctioned user, when the action implies one.
	TargetUserID string `gorm:"type:uuid" json:"target_user_id,omitempty"`
	// Detail зберігається як JSON або текст
	Detail string `gorm:"type:text" json:"detail,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
