package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

type OrderHistoryRepository struct {
	db *gorm.DB
}

func NewOrderHistoryRepository(db *gorm.DB) *OrderHistoryRepository {
	return &OrderHistoryRepository{db: db}
}

func historyToDomain(m *models.OrderHistoryModel) *workorder.HistoryEntry {
	return &workorder.HistoryEntry{
		ID:        m.ID,
		OID:       m.OID,
		Status:    workorder.Status(m.Status),
		Name:      m.Name,
		Phone:     m.Phone,
		Remark:    m.Remark,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func (r *OrderHistoryRepository) Append(ctx context.Context, entry *workorder.HistoryEntry) error {
	model := &models.OrderHistoryModel{
		OID:     entry.OID,
		Status:  string(entry.Status),
		Name:    entry.Name,
		Phone:   entry.Phone,
		Remark:  entry.Remark,
		Content: entry.Content,
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append order history: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *OrderHistoryRepository) ListByOrder(ctx context.Context, oid uint) ([]*workorder.HistoryEntry, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.OrderHistoryModel
	if err := tx.Where("oid = ?", oid).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list order history: %w", err)
	}

	entries := make([]*workorder.HistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, historyToDomain(&rows[i]))
	}
	return entries, nil
}

func (r *OrderHistoryRepository) LatestByStatus(ctx context.Context, oid uint, status workorder.Status) (*workorder.HistoryEntry, error) {
	var model models.OrderHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("oid = ? AND status = ?", oid, string(status)).
		Order("id DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order history not found")
		}
		return nil, fmt.Errorf("failed to find order history: %w", err)
	}
	return historyToDomain(&model), nil
}
