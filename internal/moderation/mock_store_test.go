package moderation_test

import (
	"time"

	"careline/backend/internal/models"
	"careline/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStore satisfies both capability interfaces so one mock can drive the
// whole service in tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateConversation(helpRequestID, helperID, initialMessage string) (*models.Conversation, *models.Message, error) {
	args := m.Called(helpRequestID, helperID, initialMessage)
	return args.Get(0).(*models.Conversation), args.Get(1).(*models.Message), args.Error(2)
}

func (m *MockStore) AppendMessage(p storage.AppendMessageParams) (*models.Message, error) {
	args := m.Called(p)
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStore) GetConversation(conversationID, userID string) (*models.Conversation, []models.Message, error) {
	args := m.Called(conversationID, userID)
	return args.Get(0).(*models.Conversation), args.Get(1).([]models.Message), args.Error(2)
}

func (m *MockStore) ListConversations(userID, status string) ([]storage.ConversationSummary, error) {
	args := m.Called(userID, status)
	return args.Get(0).([]storage.ConversationSummary), args.Error(1)
}

func (m *MockStore) MarkConversationRead(conversationID, readerID string) (*models.Conversation, int64, error) {
	args := m.Called(conversationID, readerID)
	return args.Get(0).(*models.Conversation), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) TransitionConversation(conversationID, actorID, target string) (*models.Conversation, error) {
	args := m.Called(conversationID, actorID, target)
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

func (m *MockStore) PendingReports(limit, offset int) ([]storage.QueueItem, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.QueueItem), args.Error(1)
}

func (m *MockStore) QueueStats() (*storage.QueueStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.QueueStats), args.Error(1)
}

func (m *MockStore) ResolveReport(p storage.ResolveReportParams) (*storage.ResolveOutcome, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ResolveOutcome), args.Error(1)
}

func (m *MockStore) SenderReportCounts(userID string) (int64, int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) ApplyRestriction(p storage.RestrictionParams) error {
	args := m.Called(p)
	return args.Error(0)
}
