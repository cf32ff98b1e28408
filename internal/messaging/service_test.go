package messaging_test

import (
	"testing"
	"time"

	"careline/backend/internal/messaging"
	"careline/backend/internal/models"
	"careline/backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	helpRequestID  = uuid.NewString()
	conversationID = uuid.NewString()
	requesterID    = uuid.NewString()
	helperID       = uuid.NewString()
)

func conv(status string) *models.Conversation {
	return &models.Conversation{
		ID:            conversationID,
		HelpRequestID: helpRequestID,
		RequesterID:   requesterID,
		HelperID:      helperID,
		Status:        status,
	}
}

func TestService_CreateConversation(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	msg := &models.Message{ID: uuid.NewString(), ConversationID: conversationID, SenderID: helperID}
	storeMock.On("ActiveRestriction", helperID).Return(nil, nil)
	storeMock.On("CreateConversation", helpRequestID, helperID, "Hi, I can help with this").
		Return(conv(models.ConversationPending), msg, nil)
	storeMock.On("PublishEvent", mock.AnythingOfType("models.Event")).Return(nil)

	res := svc.CreateConversation(models.CreateConversationRequest{
		HelpRequestID:  helpRequestID,
		HelperID:       helperID,
		InitialMessage: "Hi, I can help with this",
	})

	assert.True(t, res.Success)
	assert.Equal(t, conversationID, res.ConversationID)
	assert.Equal(t, msg.ID, res.MessageID)

	// Подія має піти автору запиту, не хелперу.
	storeMock.AssertCalled(t, "PublishEvent", mock.MatchedBy(func(ev models.Event) bool {
		return ev.Type == models.EventConversationCreated && ev.RecipientID == requesterID
	}))
}

func TestService_CreateConversation_Duplicate(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	storeMock.On("ActiveRestriction", helperID).Return(nil, nil)
	storeMock.On("CreateConversation", helpRequestID, helperID, mock.AnythingOfType("string")).
		Return(nil, nil, storage.ErrConversationExists)

	res := svc.CreateConversation(models.CreateConversationRequest{
		HelpRequestID:  helpRequestID,
		HelperID:       helperID,
		InitialMessage: "Hi, I can help with this",
	})

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeConversationExists, res.Error)
	storeMock.AssertNotCalled(t, "PublishEvent", mock.Anything)
}

func TestService_CreateConversation_ValidationShortCircuits(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	res := svc.CreateConversation(models.CreateConversationRequest{
		HelpRequestID:  helpRequestID,
		HelperID:       helperID,
		InitialMessage: "too short",
	})

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeValidationError, res.Error)
	storeMock.AssertNotCalled(t, "CreateConversation", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SendMessage(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	msg := &models.Message{
		ID:             uuid.NewString(),
		Seq:            42,
		ConversationID: conversationID,
		SenderID:       helperID,
		RecipientID:    requesterID,
		Content:        "hello there",
		CreatedAt:      time.Now(),
	}
	storeMock.On("ActiveRestriction", helperID).Return(nil, nil)
	storeMock.On("AppendMessage", mock.AnythingOfType("storage.AppendMessageParams")).Return(msg, nil)
	storeMock.On("PublishEvent", mock.AnythingOfType("models.Event")).Return(nil)

	res := svc.SendMessage(models.SendMessageRequest{
		ConversationID: conversationID,
		SenderID:       helperID,
		Content:        "hello there",
	})

	assert.True(t, res.Success)
	assert.Equal(t, msg.ID, res.MessageID)
	assert.Equal(t, int64(42), res.Seq)

	storeMock.AssertCalled(t, "PublishEvent", mock.MatchedBy(func(ev models.Event) bool {
		return ev.Type == models.EventMessageSent && ev.RecipientID == requesterID
	}))
}

func TestService_SendMessage_NotParticipant(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	outsider := uuid.NewString()
	storeMock.On("ActiveRestriction", outsider).Return(nil, nil)
	storeMock.On("AppendMessage", mock.AnythingOfType("storage.AppendMessageParams")).
		Return(nil, storage.ErrForbidden)

	res := svc.SendMessage(models.SendMessageRequest{
		ConversationID: conversationID,
		SenderID:       outsider,
		Content:        "let me in",
	})

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeForbidden, res.Error)
}

func TestService_SendMessage_ClosedConversation(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	storeMock.On("ActiveRestriction", helperID).Return(nil, nil)
	storeMock.On("AppendMessage", mock.AnythingOfType("storage.AppendMessageParams")).
		Return(nil, storage.ErrConversationClosed)

	res := svc.SendMessage(models.SendMessageRequest{
		ConversationID: conversationID,
		SenderID:       helperID,
		Content:        "anyone there?",
	})

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeConversationClosed, res.Error)
}

func TestService_SendMessage_SuspendedSender(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	storeMock.On("ActiveRestriction", helperID).Return(&models.UserRestriction{
		UserID: helperID,
		Level:  models.RestrictionSuspended,
	}, nil)

	res := svc.SendMessage(models.SendMessageRequest{
		ConversationID: conversationID,
		SenderID:       helperID,
		Content:        "hello?",
	})

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeForbidden, res.Error)
	storeMock.AssertNotCalled(t, "AppendMessage", mock.Anything)
}

func TestService_SendMessage_LimitedSenderOverBudget(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	storeMock.On("ActiveRestriction", helperID).Return(&models.UserRestriction{
		UserID:             helperID,
		Level:              models.RestrictionLimited,
		MessageLimitPerDay: 10,
	}, nil)
	storeMock.On("CountMessagesSince", helperID, mock.AnythingOfType("time.Time")).
		Return(int64(10), nil)

	res := svc.SendMessage(models.SendMessageRequest{
		ConversationID: conversationID,
		SenderID:       helperID,
		Content:        "one more",
	})

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeForbidden, res.Error)
	storeMock.AssertNotCalled(t, "AppendMessage", mock.Anything)
}

func TestService_SendMessage_LimitedSenderWithinBudget(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	msg := &models.Message{ID: uuid.NewString(), ConversationID: conversationID, RecipientID: requesterID}
	storeMock.On("ActiveRestriction", helperID).Return(&models.UserRestriction{
		UserID:             helperID,
		Level:              models.RestrictionLimited,
		MessageLimitPerDay: 10,
	}, nil)
	storeMock.On("CountMessagesSince", helperID, mock.AnythingOfType("time.Time")).
		Return(int64(3), nil)
	storeMock.On("AppendMessage", mock.AnythingOfType("storage.AppendMessageParams")).Return(msg, nil)
	storeMock.On("PublishEvent", mock.AnythingOfType("models.Event")).Return(nil)

	res := svc.SendMessage(models.SendMessageRequest{
		ConversationID: conversationID,
		SenderID:       helperID,
		Content:        "still under the limit",
	})

	assert.True(t, res.Success)
}

func TestService_MarkRead_Idempotent(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	// Друга позначка нічого не оновлює, але все одно успішна.
	storeMock.On("MarkConversationRead", conversationID, requesterID).
		Return(conv(models.ConversationAccepted), int64(0), nil)

	res := svc.MarkRead(conversationID, requesterID)

	assert.True(t, res.Success)
	assert.Equal(t, int64(0), res.Updated)
	storeMock.AssertNotCalled(t, "PublishEvent", mock.Anything)
}

func TestService_MarkRead_PublishesReceipt(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	storeMock.On("MarkConversationRead", conversationID, requesterID).
		Return(conv(models.ConversationAccepted), int64(3), nil)
	storeMock.On("PublishEvent", mock.AnythingOfType("models.Event")).Return(nil)

	res := svc.MarkRead(conversationID, requesterID)

	assert.True(t, res.Success)
	assert.Equal(t, int64(3), res.Updated)
	storeMock.AssertCalled(t, "PublishEvent", mock.MatchedBy(func(ev models.Event) bool {
		return ev.Type == models.EventMessagesRead && ev.RecipientID == helperID && ev.ReadCount == 3
	}))
}

func TestService_Accept(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	storeMock.On("TransitionConversation", conversationID, helperID, models.ConversationAccepted).
		Return(conv(models.ConversationAccepted), nil)
	storeMock.On("PublishEvent", mock.AnythingOfType("models.Event")).Return(nil)

	res := svc.Accept(conversationID, helperID)

	assert.True(t, res.Success)
	assert.Equal(t, models.ConversationAccepted, res.Status)
	storeMock.AssertCalled(t, "PublishEvent", mock.MatchedBy(func(ev models.Event) bool {
		return ev.Type == models.EventStatusChanged && ev.RecipientID == requesterID
	}))
}

func TestService_Accept_AlreadyDecided(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	storeMock.On("TransitionConversation", conversationID, helperID, models.ConversationAccepted).
		Return(nil, storage.ErrInvalidTransition)

	res := svc.Accept(conversationID, helperID)

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeInvalidTransition, res.Error)
}

func TestService_GetConversation_InvalidID(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	res := svc.GetConversation("not-a-uuid", requesterID)

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeValidationError, res.Error)
	storeMock.AssertNotCalled(t, "GetConversation", mock.Anything, mock.Anything)
}

func TestService_ListConversations_StatusFilter(t *testing.T) {
	storeMock := new(MockStore)
	svc := messaging.NewService(storeMock)

	res := svc.ListConversations(requesterID, "declined")
	assert.False(t, res.Success)
	assert.Equal(t, models.CodeValidationError, res.Error)

	storeMock.On("ListConversations", requesterID, models.ConversationPending).
		Return([]storage.ConversationSummary{}, nil)
	res = svc.ListConversations(requesterID, models.ConversationPending)
	assert.True(t, res.Success)
}
