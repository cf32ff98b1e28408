package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Content length bounds, in characters. The conversation-opening message has
// a higher floor so first contact carries some substance.
const (
	MessageContentMin        = 1
	MessageContentMax        = 1000
	InitialMessageContentMin = 10
	DescriptionMax           = 500
	BulkResolveMax           = 50
)

var validReasons = map[string]bool{
	ReportReasonSpam:          true,
	ReportReasonHarassment:    true,
	ReportReasonInappropriate: true,
	ReportReasonScam:          true,
	ReportReasonOther:         true,
}

var validActions = map[string]bool{
	ActionDismiss:      true,
	ActionHideMessage:  true,
	ActionWarnUser:     true,
	ActionRestrictUser: true,
	ActionBanUser:      true,
}

// ValidUUID reports whether s parses as a UUID. Handlers use it to reject
// malformed path parameters before any storage call.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// CreateConversationRequest opens a conversation against a help request.
// HelperID is filled from the authenticated caller, never from the body.
type CreateConversationRequest struct {
	HelpRequestID  string `json:"help_request_id"`
	HelperID       string `json:"-"`
	InitialMessage string `json:"initial_message"`
}

// Validate checks the request before any storage call is made.
func (r *CreateConversationRequest) Validate() error {
	if !ValidUUID(r.HelpRequestID) {
		return errors.New("invalid help request ID format")
	}
	if !ValidUUID(r.HelperID) {
		return errors.New("invalid helper ID format")
	}
	n := utf8.RuneCountInString(r.InitialMessage)
	if n < InitialMessageContentMin {
		return errors.New("initial message must be at least 10 characters")
	}
	if n > MessageContentMax {
		return errors.New("message too long (max 1000 characters)")
	}
	if strings.TrimSpace(r.InitialMessage) == "" {
		return errors.New("message cannot be only whitespace")
	}
	return nil
}

// SendMessageRequest appends one message to an existing conversation.
type SendMessageRequest struct {
	ConversationID string `json:"-"`
	SenderID       string `json:"-"`
	Content        string `json:"content"`
}

// Validate checks the request before any storage call is made.
func (r *SendMessageRequest) Validate() error {
	if !ValidUUID(r.ConversationID) {
		return errors.New("invalid conversation ID format")
	}
	if !ValidUUID(r.SenderID) {
		return errors.New("invalid sender ID format")
	}
	n := utf8.RuneCountInString(r.Content)
	if n < MessageContentMin {
		return errors.New("message cannot be empty")
	}
	if n > MessageContentMax {
		return errors.New("message too long (max 1000 characters)")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("message cannot be only whitespace")
	}
	return nil
}

// FileReportRequest files a complaint against a message.
type FileReportRequest struct {
	MessageID   string `json:"-"`
	ReporterID  string `json:"-"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Validate checks the request before any storage call is made.
func (r *FileReportRequest) Validate() error {
	if !ValidUUID(r.MessageID) {
		return errors.New("invalid message ID format")
	}
	if !ValidUUID(r.ReporterID) {
		return errors.New("invalid reporter ID format")
	}
	if !validReasons[r.Reason] {
		return errors.New("unknown report reason")
	}
	if utf8.RuneCountInString(r.Description) > DescriptionMax {
		return errors.New("description too long (max 500 characters)")
	}
	return nil
}

// ResolveReportRequest is a single admin resolution.
type ResolveReportRequest struct {
	ReportID string `json:"-"`
	AdminID  string `json:"-"`
	Action   string `json:"action"`
	Notes    string `json:"notes"`
}

// Validate checks the request before any storage call is made.
func (r *ResolveReportRequest) Validate() error {
	if !ValidUUID(r.ReportID) {
		return errors.New("invalid report ID format")
	}
	if !validActions[r.Action] {
		return errors.New("unknown moderation action")
	}
	return nil
}

// BulkResolveRequest resolves up to BulkResolveMax reports with one action.
type BulkResolveRequest struct {
	ReportIDs []string `json:"report_ids"`
	AdminID   string   `json:"-"`
	Action    string   `json:"action"`
	Notes     string   `json:"notes"`
}

// Validate checks the batch shape; per-item ID validity is reported per item
// so one bad ID does not reject the whole batch.
func (r *BulkResolveRequest) Validate() error {
	if len(r.ReportIDs) == 0 {
		return errors.New("report_ids must not be empty")
	}
	if len(r.ReportIDs) > BulkResolveMax {
		return errors.New("too many reports in one batch (max 50)")
	}
	if !validActions[r.Action] {
		return errors.New("unknown moderation action")
	}
	return nil
}
