package models_test

import (
	"strings"
	"testing"

	"careline/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateConversationRequest_Validate(t *testing.T) {
	valid := models.CreateConversationRequest{
		HelpRequestID:  uuid.NewString(),
		HelperID:       uuid.NewString(),
		InitialMessage: "Hi, I can help with this request",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *models.CreateConversationRequest)
	}{
		{"bad help request id", func(r *models.CreateConversationRequest) { r.HelpRequestID = "nope" }},
		{"bad helper id", func(r *models.CreateConversationRequest) { r.HelperID = "" }},
		{"too short", func(r *models.CreateConversationRequest) { r.InitialMessage = "short one" }},
		{"too long", func(r *models.CreateConversationRequest) {
			r.InitialMessage = strings.Repeat("a", models.MessageContentMax+1)
		}},
		{"whitespace only", func(r *models.CreateConversationRequest) {
			r.InitialMessage = strings.Repeat(" ", 20)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestCreateConversationRequest_MinimumLengthIsExact(t *testing.T) {
	r := models.CreateConversationRequest{
		HelpRequestID:  uuid.NewString(),
		HelperID:       uuid.NewString(),
		InitialMessage: strings.Repeat("a", models.InitialMessageContentMin),
	}
	assert.NoError(t, r.Validate())

	r.InitialMessage = strings.Repeat("a", models.InitialMessageContentMin-1)
	assert.Error(t, r.Validate())
}

func TestSendMessageRequest_Validate(t *testing.T) {
	valid := models.SendMessageRequest{
		ConversationID: uuid.NewString(),
		SenderID:       uuid.NewString(),
		Content:        "hello",
	}
	assert.NoError(t, valid.Validate())

	// Довжина рахується в рунах, не байтах.
	r := valid
	r.Content = strings.Repeat("б", models.MessageContentMax)
	assert.NoError(t, r.Validate())
	r.Content = strings.Repeat("б", models.MessageContentMax+1)
	assert.Error(t, r.Validate())

	r = valid
	r.Content = ""
	assert.Error(t, r.Validate())

	r = valid
	r.Content = "   "
	assert.Error(t, r.Validate())

	r = valid
	r.ConversationID = "not-a-uuid"
	assert.Error(t, r.Validate())
}

func TestFileReportRequest_Validate(t *testing.T) {
	valid := models.FileReportRequest{
		MessageID:  uuid.NewString(),
		ReporterID: uuid.NewString(),
		Reason:     models.ReportReasonSpam,
	}
	assert.NoError(t, valid.Validate())

	r := valid
	r.Reason = "vibes"
	assert.Error(t, r.Validate())

	r = valid
	r.Description = strings.Repeat("a", models.DescriptionMax+1)
	assert.Error(t, r.Validate())

	r = valid
	r.Description = strings.Repeat("a", models.DescriptionMax)
	assert.NoError(t, r.Validate())
}

func TestResolveReportRequest_Validate(t *testing.T) {
	valid := models.ResolveReportRequest{
		ReportID: uuid.NewString(),
		Action:   models.ActionHideMessage,
	}
	assert.NoError(t, valid.Validate())

	r := valid
	r.Action = "delete_everything"
	assert.Error(t, r.Validate())

	r = valid
	r.ReportID = "123"
	assert.Error(t, r.Validate())
}

func TestBulkResolveRequest_Validate(t *testing.T) {
	valid := models.BulkResolveRequest{
		ReportIDs: []string{uuid.NewString(), uuid.NewString()},
		Action:    models.ActionDismiss,
	}
	assert.NoError(t, valid.Validate())

	r := valid
	r.ReportIDs = nil
	assert.Error(t, r.Validate())

	r = valid
	r.ReportIDs = make([]string, models.BulkResolveMax+1)
	assert.Error(t, r.Validate())

	// Зіпсований ID у списку не валить весь батч.
	r = valid
	r.ReportIDs = []string{uuid.NewString(), "not-a-uuid"}
	assert.NoError(t, r.Validate())
}
