package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

type PatrolRepository struct {
	db *gorm.DB
}

func NewPatrolRepository(db *gorm.DB) *PatrolRepository {
	return &PatrolRepository{db: db}
}

func planToDomain(m *models.PatrolMetaModel) *patrol.Plan {
	return &patrol.Plan{
		ID:         m.ID,
		PatrolID:   m.PatrolID,
		PID:        m.PID,
		Total:      m.Total,
		Unfinished: m.Unfinished,
		Status:     patrol.Status(m.Status),
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		DelFlag:    m.DelFlag,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *PatrolRepository) CreatePlan(ctx context.Context, plan *patrol.Plan, details []*patrol.Detail) error {
	tx := db.GetTxFromContext(ctx, r.db)

	return tx.Transaction(func(tx *gorm.DB) error {
		meta := &models.PatrolMetaModel{
			PatrolID:   plan.PatrolID,
			PID:        plan.PID,
			Total:      plan.Total,
			Unfinished: plan.Unfinished,
			Status:     int(plan.Status),
			StartTime:  plan.StartTime,
			EndTime:    plan.EndTime,
		}
		if err := tx.Create(meta).Error; err != nil {
			return fmt.Errorf("failed to create patrol plan: %w", err)
		}
		plan.ID = meta.ID

		rows := make([]models.PatrolDetailModel, 0, len(details))
		for _, d := range details {
			rows = append(rows, models.PatrolDetailModel{PID: meta.ID, EID: d.EID})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create patrol details: %w", err)
		}
		for i, d := range details {
			d.ID = rows[i].ID
			d.PID = meta.ID
		}
		return nil
	})
}

func (r *PatrolRepository) GetPlan(ctx context.Context, id uint) (*patrol.Plan, error) {
	var model models.PatrolMetaModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("patrol plan not found")
		}
		return nil, fmt.Errorf("failed to find patrol plan: %w", err)
	}
	return planToDomain(&model), nil
}

func (r *PatrolRepository) GetPlanByPatrolID(ctx context.Context, patrolID string) (*patrol.Plan, error) {
	var model models.PatrolMetaModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("patrol_id = ?", patrolID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("patrol plan not found")
		}
		return nil, fmt.Errorf("failed to find patrol plan: %w", err)
	}
	return planToDomain(&model), nil
}

func (r *PatrolRepository) ListPlans(ctx context.Context, filter patrol.Filter) ([]*patrol.Plan, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.PatrolMetaModel{}).
		Where("del_flag = ?", false)

	if filter.Status != nil {
		tx = tx.Where("status = ?", int(*filter.Status))
	}
	if filter.PID != nil {
		tx = tx.Where("pid = ?", *filter.PID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count patrol plans: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		tx = tx.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.PatrolMetaModel
	if err := tx.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list patrol plans: %w", err)
	}

	plans := make([]*patrol.Plan, 0, len(rows))
	for i := range rows {
		plans = append(plans, planToDomain(&rows[i]))
	}
	return plans, total, nil
}

func (r *PatrolRepository) ListDetails(ctx context.Context, planID uint) ([]*patrol.Detail, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.PatrolDetailModel
	if err := tx.Where("pid = ? AND del_flag = ?", planID, false).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list patrol details: %w", err)
	}

	details := make([]*patrol.Detail, 0, len(rows))
	for _, m := range rows {
		details = append(details, &patrol.Detail{
			ID:      m.ID,
			PID:     m.PID,
			EID:     m.EID,
			Checked: m.Checked,
			DelFlag: m.DelFlag,
		})
	}
	return details, nil
}

func (r *PatrolRepository) CountByPatrolIDPrefix(ctx context.Context, prefix string) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var n int64
	if err := tx.Model(&models.PatrolMetaModel{}).
		Where("patrol_id LIKE ?", prefix+"%").
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count patrol ids: %w", err)
	}
	return n, nil
}

// CheckOff flips one detail to checked and recomputes the plan's
// unfinished count inside the same transaction. The conditional update
// on checked=0 makes a double check-off a no-op.
func (r *PatrolRepository) CheckOff(ctx context.Context, detailID, planID, eid uint) (bool, error) {
	checked := false
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PatrolDetailModel{}).
			Where("id = ? AND pid = ? AND eid = ? AND checked = ?", detailID, planID, eid, 0).
			Update("checked", 1)
		if result.Error != nil {
			return fmt.Errorf("failed to check off patrol detail: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		checked = true

		var unfinished int64
		if err := tx.Model(&models.PatrolDetailModel{}).
			Where("pid = ? AND checked = ? AND del_flag = ?", planID, 0, false).
			Count(&unfinished).Error; err != nil {
			return fmt.Errorf("failed to count unfinished details: %w", err)
		}

		updates := map[string]any{"unfinished": unfinished}
		if unfinished == 0 {
			updates["status"] = int(patrol.StatusCompleted)
		}
		if err := tx.Model(&models.PatrolMetaModel{}).
			Where("id = ?", planID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update patrol plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return checked, nil
}

func (r *PatrolRepository) CancelPlan(ctx context.Context, planID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.PatrolMetaModel{}).
		Where("id = ? AND status = ?", planID, int(patrol.StatusInProgress)).
		Update("status", int(patrol.StatusCancelled))
	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel patrol plan: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *PatrolRepository) CancelOverdue(ctx context.Context, now string) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.PatrolMetaModel{}).
		Where("status = ? AND end_time < ?", int(patrol.StatusInProgress), now).
		Update("status", int(patrol.StatusCancelled))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cancel overdue patrol plans: %w", result.Error)
	}
	return result.RowsAffected, nil
}
