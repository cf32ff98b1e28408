package messaging_test

import (
	"time"

	"careline/backend/internal/models"
	"careline/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateConversation(helpRequestID, helperID, initialMessage string) (*models.Conversation, *models.Message, error) {
	args := m.Called(helpRequestID, helperID, initialMessage)
	var conv *models.Conversation
	var msg *models.Message
	if args.Get(0) != nil {
		conv = args.Get(0).(*models.Conversation)
	}
	if args.Get(1) != nil {
		msg = args.Get(1).(*models.Message)
	}
	return conv, msg, args.Error(2)
}

func (m *MockStore) AppendMessage(p storage.AppendMessageParams) (*models.Message, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStore) GetConversation(conversationID, userID string) (*models.Conversation, []models.Message, error) {
	args := m.Called(conversationID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Conversation), args.Get(1).([]models.Message), args.Error(2)
}

func (m *MockStore) ListConversations(userID, status string) ([]storage.ConversationSummary, error) {
	args := m.Called(userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ConversationSummary), args.Error(1)
}

func (m *MockStore) MarkConversationRead(conversationID, readerID string) (*models.Conversation, int64, error) {
	args := m.Called(conversationID, readerID)
	var conv *models.Conversation
	if args.Get(0) != nil {
		conv = args.Get(0).(*models.Conversation)
	}
	return conv, args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) TransitionConversation(conversationID, actorID, target string) (*models.Conversation, error) {
	args := m.Called(conversationID, actorID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStore) FileReport(report *models.MessageReport) (*models.MessageReport, *models.Message, bool, error) {
	args := m.Called(report)
	var saved *models.MessageReport
	var msg *models.Message
	if args.Get(0) != nil {
		saved = args.Get(0).(*models.MessageReport)
	}
	if args.Get(1) != nil {
		msg = args.Get(1).(*models.Message)
	}
	return saved, msg, args.Bool(2), args.Error(3)
}

func (m *MockStore) ActiveRestriction(userID string) (*models.UserRestriction, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRestriction), args.Error(1)
}

func (m *MockStore) CountMessagesSince(senderID string, since time.Time) (int64, error) {
	args := m.Called(senderID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) PublishEvent(ev models.Event) error {
	args := m.Called(ev)
	return args.Error(0)
}
