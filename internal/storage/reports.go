package storage

import (
	"errors"
	"fmt"
	"time"

	"careline/backend/internal/config"
	"careline/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FileReport inserts a complaint if the reporter has not already filed one
// against this message. The insert races on the (message_id, reported_by)
// unique index; a duplicate is swallowed and the existing row returned, so
// filing is idempotent and a user cannot spam-report one message. The
// reported message is returned so callers can notify admins with context.
func (s *Service) FileReport(report *models.MessageReport) (*models.MessageReport, *models.Message, bool, error) {
	var msg models.Message
	if err := s.DB.First(&msg, "id = ?", report.MessageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, false, ErrNotFound
		}
		return nil, nil, false, err
	}

	report.Status = models.ReportPending
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "reported_by"}},
		DoNothing: true,
	}).Create(report)
	if res.Error != nil {
		return nil, nil, false, res.Error
	}

	if res.RowsAffected == 0 {
		// Duplicate filing: hand back the row that already exists.
		var existing models.MessageReport
		if err := s.DB.Where("message_id = ? AND reported_by = ?",
			report.MessageID, report.ReportedBy).First(&existing).Error; err != nil {
			return nil, nil, false, err
		}
		return &existing, &msg, false, nil
	}

	return report, &msg, true, nil
}

// PendingReports returns the moderation queue oldest-first, each report
// joined with the reported message and the help request it came from. FIFO
// keeps the longest-waiting complaints at the front of the backlog.
func (s *Service) PendingReports(limit, offset int) ([]QueueItem, error) {
	var reports []models.MessageReport
	if err := s.DB.Where("status = ?", models.ReportPending).
		Order("created_at asc").
		Limit(limit).Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, err
	}

	items := make([]QueueItem, 0, len(reports))
	for _, r := range reports {
		var msg models.Message
		if err := s.DB.First(&msg, "id = ?", r.MessageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		item := QueueItem{Report: r, Message: msg}

		var conv models.Conversation
		if err := s.DB.First(&conv, "id = ?", msg.ConversationID).Error; err == nil {
			var req models.HelpRequest
			if err := s.DB.First(&req, "id = ?", conv.HelpRequestID).Error; err == nil {
				item.HelpRequestTitle = req.Title
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// QueueStats summarizes the backlog and today's throughput.
func (s *Service) QueueStats() (*QueueStats, error) {
	stats := &QueueStats{}
	today := time.Now().Truncate(24 * time.Hour)

	if err := s.DB.Model(&models.MessageReport{}).
		Where("status = ?", models.ReportPending).
		Count(&stats.TotalPending).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.MessageReport{}).
		Where("status IN ? AND reviewed_at >= ?",
			[]string{models.ReportDismissed, models.ReportActionTaken}, today).
		Count(&stats.ProcessedToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.MessageReport{}).
		Where("status = ? AND reviewed_at >= ?", models.ReportDismissed, today).
		Count(&stats.DismissedToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.MessageReport{}).
		Where("status = ? AND reviewed_at >= ?", models.ReportActionTaken, today).
		Count(&stats.ActionsTakenToday).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ResolveReport moves a pending report to its terminal state and applies the
// chosen sanction to the message's sender, all in one transaction. The
// status flip is a conditional UPDATE keyed on status='pending': when two
// admins race on the same report, or a client retries, only the first
// attempt matches a row and every later one gets ErrAlreadyProcessed with no
// state change.
func (s *Service) ResolveReport(p ResolveReportParams) (*ResolveOutcome, error) {
	outcome := &ResolveOutcome{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		terminal := models.ReportActionTaken
		if p.Action == models.ActionDismiss {
			terminal = models.ReportDismissed
		}

		now := time.Now()
		res := tx.Model(&models.MessageReport{}).
			Where("id = ? AND status = ?", p.ReportID, models.ReportPending).
			Updates(map[string]interface{}{
				"status":           terminal,
				"reviewed_by":      p.AdminID,
				"reviewed_at":      now,
				"resolution_notes": p.Notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existing models.MessageReport
			if err := tx.First(&existing, "id = ?", p.ReportID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			return ErrAlreadyProcessed
		}

		var report models.MessageReport
		if err := tx.First(&report, "id = ?", p.ReportID).Error; err != nil {
			return err
		}
		var msg models.Message
		if err := tx.First(&msg, "id = ?", report.MessageID).Error; err != nil {
			return err
		}
		outcome.Report = report

		if err := applySanction(tx, p, &report, &msg, outcome, now); err != nil {
			return err
		}

		entry := models.MessageAuditLog{
			MessageID:    &report.MessageID,
			ReportID:     &report.ID,
			ActorID:      p.AdminID,
			Action:       p.Action,
			TargetUserID: outcome.SanctionedUserID,
			Detail:       fmt.Sprintf("reason=%s notes=%s", report.Reason, p.Notes),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// applySanction maps the moderation action onto the message and its sender.
// Sanctions always target the sender of the reported message, never the
// reporter.
func applySanction(tx *gorm.DB, p ResolveReportParams, report *models.MessageReport, msg *models.Message, outcome *ResolveOutcome, now time.Time) error {
	switch p.Action {
	case models.ActionDismiss:
		return nil

	case models.ActionHideMessage:
		return tx.Model(&models.Message{}).
			Where("id = ?", msg.ID).
			Updates(map[string]interface{}{
				"moderation_status":  models.ModerationHidden,
				"is_flagged":         true,
				"flagged_categories": gorm.Expr("array_append(coalesce(flagged_categories, '{}'), ?::text)", report.Reason),
			}).Error

	case models.ActionWarnUser:
		// A warning is audit trail only, no restriction change.
		outcome.SanctionedUserID = msg.SenderID
		return nil

	case models.ActionRestrictUser:
		outcome.SanctionedUserID = msg.SenderID
		expires := now.Add(config.RestrictDuration)
		return upsertRestriction(tx, models.UserRestriction{
			UserID:             msg.SenderID,
			Level:              models.RestrictionLimited,
			Reason:             fmt.Sprintf("Limited for %s", report.Reason),
			AppliedBy:          p.AdminID,
			ExpiresAt:          &expires,
			MessageLimitPerDay: config.LimitedMessagesPerDay,
		})

	case models.ActionBanUser:
		outcome.SanctionedUserID = msg.SenderID
		return upsertRestriction(tx, models.UserRestriction{
			UserID:             msg.SenderID,
			Level:              models.RestrictionBanned,
			Reason:             fmt.Sprintf("Banned for %s", report.Reason),
			AppliedBy:          p.AdminID,
			ExpiresAt:          nil, // permanent
			MessageLimitPerDay: 0,
		})
	}

	return fmt.Errorf("unknown moderation action %q", p.Action)
}

// SenderReportCounts counts reports filed against messages the user sent,
// total and verified (action taken). Feeds the trust score.
func (s *Service) SenderReportCounts(userID string) (int64, int64, error) {
	base := s.DB.Model(&models.MessageReport{}).
		Joins("JOIN messages ON messages.id = message_reports.message_id").
		Where("messages.sender_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var verified int64
	if err := base.Session(&gorm.Session{}).
		Where("message_reports.status = ?", models.ReportActionTaken).
		Count(&verified).Error; err != nil {
		return 0, 0, err
	}

	return total, verified, nil
}
