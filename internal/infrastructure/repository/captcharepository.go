package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

// CaptchaRepository binds issued captchas to order or patrol cases.
// One live captcha per case; reissuing replaces the old value.
type CaptchaRepository struct {
	db *gorm.DB
}

func NewCaptchaRepository(db *gorm.DB) *CaptchaRepository {
	return &CaptchaRepository{db: db}
}

func (r *CaptchaRepository) Store(ctx context.Context, caseID, captcha string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "case_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"captcha"}),
	}).Create(&models.CaptchaMetaModel{CaseID: caseID, Captcha: captcha}).Error; err != nil {
		return fmt.Errorf("failed to store captcha: %w", err)
	}
	return nil
}

func (r *CaptchaRepository) Get(ctx context.Context, caseID string) (string, error) {
	var model models.CaptchaMetaModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("case_id = ?", caseID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("captcha not found")
		}
		return "", fmt.Errorf("failed to read captcha: %w", err)
	}
	return model.Captcha, nil
}
