package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

type EditHistoryRepository struct {
	db *gorm.DB
}

func NewEditHistoryRepository(db *gorm.DB) *EditHistoryRepository {
	return &EditHistoryRepository{db: db}
}

func (r *EditHistoryRepository) Append(ctx context.Context, entry *equipment.EditEntry) error {
	model := &models.EditHistoryModel{
		EID:     entry.EID,
		Content: entry.Content,
		Edit:    entry.Edit,
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append edit history: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *EditHistoryRepository) ListByEquipment(ctx context.Context, eid uint) ([]*equipment.EditEntry, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.EditHistoryModel
	if err := tx.Where("eid = ?", eid).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list edit history: %w", err)
	}

	entries := make([]*equipment.EditEntry, 0, len(rows))
	for _, m := range rows {
		entries = append(entries, &equipment.EditEntry{
			ID:        m.ID,
			EID:       m.EID,
			Content:   m.Content,
			Edit:      m.Edit,
			CreatedAt: m.CreatedAt,
		})
	}
	return entries, nil
}
