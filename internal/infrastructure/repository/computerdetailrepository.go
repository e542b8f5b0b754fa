package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

type ComputerDetailRepository struct {
	db *gorm.DB
}

func NewComputerDetailRepository(db *gorm.DB) *ComputerDetailRepository {
	return &ComputerDetailRepository{db: db}
}

func (r *ComputerDetailRepository) Upsert(ctx context.Context, detail *equipment.ComputerDetail) error {
	model := &models.ComputerDetailModel{
		EID:       detail.EID,
		IPAddress: detail.IPAddress,
		CPU:       detail.CPU,
		GPU:       detail.GPU,
		Disk:      detail.Disk,
		Memory:    detail.Memory,
		MainBoard: detail.MainBoard,
		Monitor:   detail.Monitor,
		Remark:    detail.Remark,
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "eid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ip_address", "cpu", "gpu", "disk", "memory", "main_board", "monitor", "remark", "del_flag",
		}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert computer detail: %w", err)
	}
	detail.ID = model.ID
	return nil
}

func (r *ComputerDetailRepository) GetByEquipment(ctx context.Context, eid uint) (*equipment.ComputerDetail, error) {
	var model models.ComputerDetailModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("eid = ? AND del_flag = ?", eid, false).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("computer detail not found")
		}
		return nil, fmt.Errorf("failed to find computer detail: %w", err)
	}
	return &equipment.ComputerDetail{
		ID:        model.ID,
		EID:       model.EID,
		IPAddress: model.IPAddress,
		CPU:       model.CPU,
		GPU:       model.GPU,
		Disk:      model.Disk,
		Memory:    model.Memory,
		MainBoard: model.MainBoard,
		Monitor:   model.Monitor,
		Remark:    model.Remark,
	}, nil
}

func (r *ComputerDetailRepository) SoftDelete(ctx context.Context, eid uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.ComputerDetailModel{}).
		Where("eid = ?", eid).
		Update("del_flag", true).Error; err != nil {
		return fmt.Errorf("failed to delete computer detail: %w", err)
	}
	return nil
}
