package moderation

import (
	"careline/backend/internal/config"
	"careline/backend/internal/models"
)

// UserScore summarizes how much the platform trusts a sender, derived from
// verified reports against their messages.
type UserScore struct {
	UserID           string `json:"user_id"`
	ReportsReceived  int64  `json:"reports_received"`
	ReportsVerified  int64  `json:"reports_verified"`
	TrustScore       int    `json:"trust_score"`
	RestrictionLevel string `json:"restriction_level"`
}

// ScoreResult is the answer to a trust score lookup.
type ScoreResult struct {
	models.Result
	Score *UserScore `json:"score,omitempty"`
}

// Score computes the user's trust score. The score starts at the base value
// and drops per verified report; the derived restriction level escalates at
// the configured thresholds.
func (s *Service) Score(userID string) ScoreResult {
	if !models.ValidUUID(userID) {
		return ScoreResult{Result: models.Fail(models.CodeValidationError, "invalid user ID format")}
	}

	total, verified, err := s.Admin.SenderReportCounts(userID)
	if err != nil {
		return ScoreResult{Result: s.failFrom("SenderReportCounts", err)}
	}

	trust := config.TrustScoreBase - int(verified)*config.VerifiedReportPenalty
	if trust < config.TrustScoreMin {
		trust = config.TrustScoreMin
	}
	if trust > config.TrustScoreMax {
		trust = config.TrustScoreMax
	}

	level := models.RestrictionNone
	switch {
	case verified >= config.BannedThreshold:
		level = models.RestrictionBanned
	case verified >= config.SuspendedThreshold:
		level = models.RestrictionSuspended
	case verified >= config.LimitedThreshold || trust < config.LowTrustThreshold:
		level = models.RestrictionLimited
	}

	return ScoreResult{
		Result: models.OK(""),
		Score: &UserScore{
			UserID:           userID,
			ReportsReceived:  total,
			ReportsVerified:  verified,
			TrustScore:       trust,
			RestrictionLevel: level,
		},
	}
}
