package storage

import (
	"errors"
	"time"

	"careline/backend/internal/models"

	"gorm.io/gorm"
)

// AppendMessage appends one message to an existing conversation and bumps the
// conversation's last_message_at in the same transaction, so a reader can
// never observe a fresh message behind a stale summary. The participant and
// declined-state checks run inside the transaction too.
func (s *Service) AppendMessage(p AppendMessageParams) (*models.Message, error) {
	if p.MessageType == "" {
		p.MessageType = models.MessageTypeText
	}

	var msg models.Message
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var conv models.Conversation
		if err := tx.First(&conv, "id = ?", p.ConversationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !conv.HasParticipant(p.SenderID) {
			return ErrForbidden
		}
		if conv.Status == models.ConversationDeclined {
			return ErrConversationClosed
		}

		msg = models.Message{
			ConversationID:    conv.ID,
			SenderID:          p.SenderID,
			RecipientID:       conv.OtherParticipant(p.SenderID),
			Content:           p.Content,
			MessageType:       p.MessageType,
			Status:            models.MessageStatusSent,
			IsFlagged:         p.Flagged,
			FlaggedCategories: p.Categories,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Update("last_message_at", msg.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}

	return &msg, nil
}

// MarkConversationRead transitions every unread message addressed to the
// reader to read, stamping read_at once. Re-invoking on an already-read set
// matches zero rows and is a no-op, which is what makes the operation safe
// for blind client retries.
func (s *Service) MarkConversationRead(conversationID, readerID string) (*models.Conversation, int64, error) {
	var conv models.Conversation
	if err := s.DB.First(&conv, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	if !conv.HasParticipant(readerID) {
		return nil, 0, ErrForbidden
	}

	res := s.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND status IN ?",
			conversationID, readerID,
			[]string{models.MessageStatusSent, models.MessageStatusDelivered}).
		Updates(map[string]interface{}{
			"status":  models.MessageStatusRead,
			"read_at": time.Now(),
		})
	if res.Error != nil {
		return nil, 0, res.Error
	}

	return &conv, res.RowsAffected, nil
}

// CountMessagesSince counts the sender's messages created after the cutoff.
// Used for daily limits on restricted users.
func (s *Service) CountMessagesSince(senderID string, since time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Message{}).
		Where("sender_id = ? AND created_at >= ?", senderID, since).
		Count(&n).Error
	return n, err
}
