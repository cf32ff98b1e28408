package config

import "time"

const (
	// Trust score
	TrustScoreBase        = 75
	VerifiedReportPenalty = 15
	TrustScoreMin         = 0
	TrustScoreMax         = 100
	LowTrustThreshold     = 40

	// Restriction escalation by verified report count
	LimitedThreshold   = 2
	SuspendedThreshold = 3
	BannedThreshold    = 5

	// Sanction durations
	RestrictDuration = 7 * 24 * time.Hour

	// Daily message limits per restriction level
	DefaultMessagesPerDay = 100
	LimitedMessagesPerDay = 10

	// Report intake
	ReportRateLimit  = 5
	ReportRateWindow = time.Hour

	// Moderation queue paging
	QueuePageDefault = 50
	QueuePageMax     = 100
)
