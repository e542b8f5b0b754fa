package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

// ItConfigRepository stores runtime toggles in a small kv table.
type ItConfigRepository struct {
	db *gorm.DB
}

func NewItConfigRepository(db *gorm.DB) *ItConfigRepository {
	return &ItConfigRepository{db: db}
}

func (r *ItConfigRepository) Get(ctx context.Context, key string) (string, error) {
	var model models.ItConfigModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("config key not found")
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return model.Value, nil
}

func (r *ItConfigRepository) Set(ctx context.Context, key, value string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.ItConfigModel{Key: key, Value: value}).Error; err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (r *ItConfigRepository) All(ctx context.Context) (map[string]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ItConfigModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}
