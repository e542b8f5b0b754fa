package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

// EmailRecord is a sent notification email.
type EmailRecord struct {
	ID      uint
	CaseID  string
	Email   string
	Captcha string
	Content string
}

type EmailHistoryRepository struct {
	db *gorm.DB
}

func NewEmailHistoryRepository(db *gorm.DB) *EmailHistoryRepository {
	return &EmailHistoryRepository{db: db}
}

func (r *EmailHistoryRepository) Record(ctx context.Context, record *EmailRecord) error {
	model := &models.EmailHistoryModel{
		CaseID:  record.CaseID,
		Email:   record.Email,
		Captcha: record.Captcha,
		Content: record.Content,
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to record email: %w", err)
	}
	record.ID = model.ID
	return nil
}

func (r *EmailHistoryRepository) GetByCaseID(ctx context.Context, caseID string) (*EmailRecord, error) {
	var model models.EmailHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("case_id = ?", caseID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("email record not found")
		}
		return nil, fmt.Errorf("failed to find email record: %w", err)
	}
	return &EmailRecord{
		ID:      model.ID,
		CaseID:  model.CaseID,
		Email:   model.Email,
		Captcha: model.Captcha,
		Content: model.Content,
	}, nil
}

func (r *EmailHistoryRepository) ExistsForCase(ctx context.Context, caseID string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var n int64
	if err := tx.Model(&models.EmailHistoryModel{}).
		Where("case_id = ?", caseID).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check email record: %w", err)
	}
	return n > 0, nil
}
