// Package messaging implements the conversation manager and message ledger:
// the validation boundary, the status state machine, and the mapping of
// storage outcomes onto the wire result envelope. All consistency guarantees
// live one layer down, in the storage transactions this package calls.
package messaging

import (
	"errors"
	"time"

	"careline/backend/internal/analysis"
	"careline/backend/internal/config"
	"careline/backend/internal/models"
	"careline/backend/internal/storage"

	"github.com/rs/zerolog/log"
)

// Service handles the business logic for conversations and messages.
type Service struct {
	Store storage.UserStore
}

// NewService creates a new messaging service.
func NewService(store storage.UserStore) *Service {
	return &Service{Store: store}
}

// CreateConversationResult is the answer to a conversation creation.
type CreateConversationResult struct {
	models.Result
	ConversationID string `json:"conversation_id,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
}

// SendMessageResult is the answer to a message append.
type SendMessageResult struct {
	models.Result
	MessageID string    `json:"message_id,omitempty"`
	Seq       int64     `json:"seq,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ConversationResult carries one conversation with its message ledger.
type ConversationResult struct {
	models.Result
	Conversation *models.Conversation `json:"conversation,omitempty"`
	Messages     []models.Message     `json:"messages,omitempty"`
}

// ListResult carries a user's conversation list.
type ListResult struct {
	models.Result
	Conversations []storage.ConversationSummary `json:"conversations"`
}

// ReadResult is the answer to a mark-as-read call.
type ReadResult struct {
	models.Result
	Updated int64 `json:"updated"`
}

// TransitionResult is the answer to an accept or decline.
type TransitionResult struct {
	models.Result
	Status string `json:"status,omitempty"`
}

// CreateConversation opens a conversation with its initial message. The two
// rows are created atomically by the storage layer; a duplicate
// (help request, helper) pair fails closed with conversation_exists, which
// is what keeps blind client retries safe.
func (s *Service) CreateConversation(req models.CreateConversationRequest) CreateConversationResult {
	if err := req.Validate(); err != nil {
		return CreateConversationResult{Result: models.Fail(models.CodeValidationError, err.Error())}
	}

	if res, restricted := s.checkRestriction(req.HelperID, false); restricted {
		return CreateConversationResult{Result: res}
	}

	conv, msg, err := s.Store.CreateConversation(req.HelpRequestID, req.HelperID, req.InitialMessage)
	if err != nil {
		return CreateConversationResult{Result: s.failFrom("CreateConversation", err)}
	}

	s.publish(models.Event{
		Type:           models.EventConversationCreated,
		RecipientID:    conv.RequesterID,
		ConversationID: conv.ID,
		Message:        msg,
	})

	return CreateConversationResult{
		Result:         models.OK("Conversation created"),
		ConversationID: conv.ID,
		MessageID:      msg.ID,
	}
}

// SendMessage appends a message to an existing conversation. Content is
// screened before storage; a flagged message is still delivered but carries
// its screening categories for the moderation queue.
func (s *Service) SendMessage(req models.SendMessageRequest) SendMessageResult {
	if err := req.Validate(); err != nil {
		return SendMessageResult{Result: models.Fail(models.CodeValidationError, err.Error())}
	}

	if res, restricted := s.checkRestriction(req.SenderID, true); restricted {
		return SendMessageResult{Result: res}
	}

	screen := analysis.ScreenContent(req.Content)

	msg, err := s.Store.AppendMessage(storage.AppendMessageParams{
		ConversationID: req.ConversationID,
		SenderID:       req.SenderID,
		Content:        req.Content,
		MessageType:    models.MessageTypeText,
		Flagged:        screen.Flagged,
		Categories:     screen.Categories,
	})
	if err != nil {
		return SendMessageResult{Result: s.failFrom("SendMessage", err)}
	}

	if screen.Flagged {
		log.Warn().
			Str("message_id", msg.ID).
			Strs("categories", screen.Categories).
			Float64("confidence", screen.Confidence).
			Msg("outbound message flagged by content screening")
	}

	s.publish(models.Event{
		Type:           models.EventMessageSent,
		RecipientID:    msg.RecipientID,
		ConversationID: msg.ConversationID,
		Message:        msg,
	})

	return SendMessageResult{
		Result:    models.OK("Message sent"),
		MessageID: msg.ID,
		Seq:       msg.Seq,
		CreatedAt: msg.CreatedAt,
	}
}

// GetConversation returns a conversation with its full ledger, participants
// only.
func (s *Service) GetConversation(conversationID, userID string) ConversationResult {
	if !models.ValidUUID(conversationID) {
		return ConversationResult{Result: models.Fail(models.CodeValidationError, "invalid conversation ID format")}
	}

	conv, messages, err := s.Store.GetConversation(conversationID, userID)
	if err != nil {
		return ConversationResult{Result: s.failFrom("GetConversation", err)}
	}
	return ConversationResult{Result: models.OK(""), Conversation: conv, Messages: messages}
}

// ListConversations lists the user's conversations, most recent activity
// first. Status filters to pending or accepted when set.
func (s *Service) ListConversations(userID, status string) ListResult {
	if status != "" && status != models.ConversationPending && status != models.ConversationAccepted {
		return ListResult{Result: models.Fail(models.CodeValidationError, "status filter must be pending or accepted")}
	}

	summaries, err := s.Store.ListConversations(userID, status)
	if err != nil {
		return ListResult{Result: s.failFrom("ListConversations", err)}
	}
	return ListResult{Result: models.OK(""), Conversations: summaries}
}

// MarkRead marks every unread message addressed to the reader as read. The
// operation is idempotent; a second call updates zero rows and still
// succeeds.
func (s *Service) MarkRead(conversationID, readerID string) ReadResult {
	if !models.ValidUUID(conversationID) {
		return ReadResult{Result: models.Fail(models.CodeValidationError, "invalid conversation ID format")}
	}

	conv, updated, err := s.Store.MarkConversationRead(conversationID, readerID)
	if err != nil {
		return ReadResult{Result: s.failFrom("MarkRead", err)}
	}

	if updated > 0 {
		// Read receipts go to the other participant.
		s.publish(models.Event{
			Type:           models.EventMessagesRead,
			RecipientID:    conv.OtherParticipant(readerID),
			ConversationID: conv.ID,
			ReadCount:      updated,
		})
	}

	return ReadResult{Result: models.OK(""), Updated: updated}
}

// Accept moves a pending conversation to accepted. Helper only.
func (s *Service) Accept(conversationID, actorID string) TransitionResult {
	return s.transition(conversationID, actorID, models.ConversationAccepted)
}

// Decline moves a pending conversation to declined. Helper only.
func (s *Service) Decline(conversationID, actorID string) TransitionResult {
	return s.transition(conversationID, actorID, models.ConversationDeclined)
}

func (s *Service) transition(conversationID, actorID, target string) TransitionResult {
	if !models.ValidUUID(conversationID) {
		return TransitionResult{Result: models.Fail(models.CodeValidationError, "invalid conversation ID format")}
	}

	conv, err := s.Store.TransitionConversation(conversationID, actorID, target)
	if err != nil {
		return TransitionResult{Result: s.failFrom("TransitionConversation", err)}
	}

	s.publish(models.Event{
		Type:           models.EventStatusChanged,
		RecipientID:    conv.OtherParticipant(actorID),
		ConversationID: conv.ID,
		Status:         conv.Status,
	})

	return TransitionResult{Result: models.OK("Conversation " + conv.Status), Status: conv.Status}
}

// checkRestriction resolves the sender's active sanction. Restricted users
// get a specific, human-readable forbidden result; the limited level may
// still send within its daily budget but may not start conversations.
func (s *Service) checkRestriction(userID string, sending bool) (models.Result, bool) {
	r, err := s.Store.ActiveRestriction(userID)
	if err != nil {
		return s.failFrom("ActiveRestriction", err), true
	}
	if r == nil || !r.Active(time.Now()) {
		return models.Result{}, false
	}

	switch r.Level {
	case models.RestrictionSuspended, models.RestrictionBanned:
		verb := "start new conversations"
		if sending {
			verb = "send messages"
		}
		return models.Fail(models.CodeForbidden,
			"You are currently "+r.Level+" and cannot "+verb+"."), true

	case models.RestrictionLimited:
		if !sending {
			return models.Fail(models.CodeForbidden,
				"You are currently limited and cannot start new conversations."), true
		}
		limit := r.MessageLimitPerDay
		if limit <= 0 {
			limit = config.LimitedMessagesPerDay
		}
		sent, err := s.Store.CountMessagesSince(userID, startOfDay(time.Now()))
		if err != nil {
			return s.failFrom("CountMessagesSince", err), true
		}
		if sent >= int64(limit) {
			return models.Fail(models.CodeForbidden,
				"Daily message limit reached."), true
		}
	}

	return models.Result{}, false
}

// failFrom translates a storage outcome into a wire result. Business-rule
// violations are expected and map to their own codes; anything else is an
// infrastructure fault, logged in full and reduced to a generic message.
func (s *Service) failFrom(op string, err error) models.Result {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return models.Fail(models.CodeNotFound, "Not found")
	case errors.Is(err, storage.ErrConversationExists):
		return models.Fail(models.CodeConversationExists, "A conversation for this request already exists")
	case errors.Is(err, storage.ErrForbidden):
		return models.Fail(models.CodeForbidden, "You are not allowed to do that")
	case errors.Is(err, storage.ErrConversationClosed):
		return models.Fail(models.CodeConversationClosed, "This conversation has been closed")
	case errors.Is(err, storage.ErrInvalidTransition):
		return models.Fail(models.CodeInvalidTransition, "This offer can no longer be changed")
	}

	log.Error().Err(err).Str("op", op).Msg("storage operation failed")
	res := models.Fail(models.CodeRPCError, "Something went wrong, please try again")
	res.Details = err.Error()
	return res
}

// publish fans an event out after commit. Fan-out is best effort: a publish
// failure is logged, never surfaced, because the row is already durable.
func (s *Service) publish(ev models.Event) {
	if err := s.Store.PublishEvent(ev); err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("failed to publish realtime event")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
