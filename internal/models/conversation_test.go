package models_test

import (
	"testing"
	"time"

	"careline/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestConversation_Participants(t *testing.T) {
	conv := models.Conversation{RequesterID: "req", HelperID: "help"}

	assert.True(t, conv.HasParticipant("req"))
	assert.True(t, conv.HasParticipant("help"))
	assert.False(t, conv.HasParticipant("stranger"))

	assert.Equal(t, "help", conv.OtherParticipant("req"))
	assert.Equal(t, "req", conv.OtherParticipant("help"))
	assert.Equal(t, "", conv.OtherParticipant("stranger"))
}

func TestUserRestriction_Active(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	none := models.UserRestriction{Level: models.RestrictionNone}
	assert.False(t, none.Active(now))

	permanent := models.UserRestriction{Level: models.RestrictionBanned}
	assert.True(t, permanent.Active(now))

	expired := models.UserRestriction{Level: models.RestrictionLimited, ExpiresAt: &past}
	assert.False(t, expired.Active(now))

	running := models.UserRestriction{Level: models.RestrictionLimited, ExpiresAt: &future}
	assert.True(t, running.Active(now))
}

func TestMessageReport_Resolved(t *testing.T) {
	r := models.MessageReport{Status: models.ReportPending}
	assert.False(t, r.Resolved())

	r.Status = models.ReportDismissed
	assert.True(t, r.Resolved())

	r.Status = models.ReportActionTaken
	assert.True(t, r.Resolved())
}
