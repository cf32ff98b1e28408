package storage

import (
	"errors"

	"careline/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveRestriction returns the user's restriction row, or nil when the user
// has none or it has expired. Expired rows are left in place for the audit
// trail; callers only see them as absent.
func (s *Service) ActiveRestriction(userID string) (*models.UserRestriction, error) {
	var r models.UserRestriction
	err := s.DB.First(&r, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ApplyRestriction upserts a sanction and writes the audit entry in one
// transaction. Used by the operator CLI; report resolution applies sanctions
// inside its own transaction.
func (s *Service) ApplyRestriction(p RestrictionParams) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := upsertRestriction(tx, models.UserRestriction{
			UserID:             p.UserID,
			Level:              p.Level,
			Reason:             p.Reason,
			AppliedBy:          p.AppliedBy,
			ExpiresAt:          p.ExpiresAt,
			MessageLimitPerDay: p.MessageLimitPerDay,
		})
		if err != nil {
			return err
		}

		entry := models.MessageAuditLog{
			ActorID:      p.AppliedBy,
			Action:       "restriction_" + p.Level,
			TargetUserID: p.UserID,
			Detail:       p.Reason,
		}
		return tx.Create(&entry).Error
	})
}

func upsertRestriction(tx *gorm.DB, r models.UserRestriction) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&r).Error
}
