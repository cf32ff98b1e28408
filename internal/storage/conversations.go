package storage

import (
	"errors"
	"time"

	"careline/backend/internal/models"

	"gorm.io/gorm"
)

// CreateConversation creates a conversation and its first message as a single
// transaction. There is no window in which the conversation exists without a
// message, and concurrent duplicate requests race on the unique
// (help_request_id, helper_id) index inside the transaction, so exactly one
// of them wins and the rest get ErrConversationExists.
func (s *Service) CreateConversation(helpRequestID, helperID, initialMessage string) (*models.Conversation, *models.Message, error) {
	var conv models.Conversation
	var msg models.Message

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.HelpRequest
		if err := tx.First(&req, "id = ?", helpRequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.RequesterID == helperID {
			// Offering help on your own request makes no sense.
			return ErrForbidden
		}

		now := time.Now()
		conv = models.Conversation{
			HelpRequestID: helpRequestID,
			HelperID:      helperID,
			RequesterID:   req.RequesterID,
			Status:        models.ConversationPending,
			LastMessageAt: now,
		}
		if err := tx.Create(&conv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConversationExists
			}
			return err
		}

		msg = models.Message{
			ConversationID: conv.ID,
			SenderID:       helperID,
			RecipientID:    req.RequesterID,
			Content:        initialMessage,
			MessageType:    models.MessageTypeText,
			Status:         models.MessageStatusSent,
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &conv, &msg, nil
}

// GetConversation loads a conversation and its messages in ledger order. The
// caller must be a participant; messages hidden by moderation are returned
// with their content replaced so the thread keeps its shape.
func (s *Service) GetConversation(conversationID, userID string) (*models.Conversation, []models.Message, error) {
	var conv models.Conversation
	if err := s.DB.First(&conv, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, nil, ErrForbidden
	}

	var messages []models.Message
	if err := s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc, seq asc").
		Find(&messages).Error; err != nil {
		return nil, nil, err
	}

	for i := range messages {
		if messages[i].ModerationStatus == models.ModerationHidden {
			messages[i].Content = "[removed by moderators]"
		}
	}

	return &conv, messages, nil
}

// ListConversations returns every conversation the user participates in,
// most recent activity first, with a summary for the conversation list UI.
// An empty status means no filter.
func (s *Service) ListConversations(userID, status string) ([]ConversationSummary, error) {
	q := s.DB.Where("requester_id = ? OR helper_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var convs []models.Conversation
	if err := q.Order("last_message_at desc").Find(&convs).Error; err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		var last models.Message
		lastPtr := &last
		err := s.DB.Where("conversation_id = ?", conv.ID).
			Order("created_at desc, seq desc").
			First(&last).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			lastPtr = nil
		} else if err != nil {
			return nil, err
		}

		var unread int64
		if err := s.DB.Model(&models.Message{}).
			Where("conversation_id = ? AND recipient_id = ? AND status <> ?",
				conv.ID, userID, models.MessageStatusRead).
			Count(&unread).Error; err != nil {
			return nil, err
		}

		summaries = append(summaries, ConversationSummary{
			Conversation:       conv,
			LastMessage:        lastPtr,
			UnreadCount:        unread,
			OtherParticipantID: conv.OtherParticipant(userID),
		})
	}

	return summaries, nil
}

// TransitionConversation applies a pending -> accepted/declined transition.
// Only the helper may transition, and the status check happens as a
// conditional UPDATE so two concurrent transitions cannot both win. A system
// message recording the decision is appended in the same transaction.
func (s *Service) TransitionConversation(conversationID, actorID, target string) (*models.Conversation, error) {
	if target != models.ConversationAccepted && target != models.ConversationDeclined {
		return nil, ErrInvalidTransition
	}

	var conv models.Conversation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&conv, "id = ?", conversationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if conv.HelperID != actorID {
			return ErrInvalidTransition
		}

		res := tx.Model(&models.Conversation{}).
			Where("id = ? AND status = ?", conversationID, models.ConversationPending).
			Update("status", target)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already accepted or declined, possibly by a racing request.
			return ErrInvalidTransition
		}
		conv.Status = target

		note := "Offer accepted"
		if target == models.ConversationDeclined {
			note = "Offer declined"
		}
		sys := models.Message{
			ConversationID: conv.ID,
			SenderID:       actorID,
			RecipientID:    conv.OtherParticipant(actorID),
			Content:        note,
			MessageType:    models.MessageTypeSystem,
			Status:         models.MessageStatusSent,
		}
		if err := tx.Create(&sys).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Update("last_message_at", sys.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}

	return &conv, nil
}
