package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

// allowedOrderColumns whitelists columns usable in distinct-value
// queries coming from the options endpoint.
var allowedOrderColumns = map[string]bool{
	"department": true,
	"equipment":  true,
	"reason":     true,
	"status":     true,
}

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

func workOrderToModel(o *workorder.WorkOrder) *models.WorkOrderModel {
	return &models.WorkOrderModel{
		ID:         o.ID,
		OrderID:    o.OrderID,
		Status:     string(o.Status),
		PID:        o.PID,
		Name:       o.Name,
		EID:        o.EID,
		Equipment:  o.Equipment,
		Department: o.Department,
		Content:    o.Content,
		Reason:     o.Reason,
		Rank:       o.Rank,
		DelFlag:    o.DelFlag,
	}
}

func workOrderToDomain(m *models.WorkOrderModel) *workorder.WorkOrder {
	return &workorder.WorkOrder{
		ID:         m.ID,
		OrderID:    m.OrderID,
		Status:     workorder.Status(m.Status),
		PID:        m.PID,
		Name:       m.Name,
		EID:        m.EID,
		Equipment:  m.Equipment,
		Department: m.Department,
		Content:    m.Content,
		Reason:     m.Reason,
		Rank:       m.Rank,
		DelFlag:    m.DelFlag,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *WorkOrderRepository) Create(ctx context.Context, order *workorder.WorkOrder) error {
	model := workOrderToModel(order)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}
	order.ID = model.ID
	return nil
}

func (r *WorkOrderRepository) GetByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("work order not found")
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}
	return workOrderToDomain(&model), nil
}

func (r *WorkOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("order_id = ?", orderID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("work order not found")
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}
	return workOrderToDomain(&model), nil
}

func (r *WorkOrderRepository) List(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.WorkOrderModel{})

	if !filter.IncludeDeleted {
		tx = tx.Where("del_flag = ?", false)
	}
	if filter.Department != nil {
		tx = tx.Where("department = ?", *filter.Department)
	}
	if filter.Equipment != nil {
		tx = tx.Where("equipment = ?", *filter.Equipment)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", string(*filter.Status))
	}
	if filter.PID != nil {
		tx = tx.Where("pid = ?", *filter.PID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count work orders: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		tx = tx.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.WorkOrderModel
	if err := tx.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list work orders: %w", err)
	}

	orders := make([]*workorder.WorkOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, workOrderToDomain(&rows[i]))
	}
	return orders, total, nil
}

func (r *WorkOrderRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !allowedOrderColumns[column] {
		return nil, fmt.Errorf("column %q is not queryable", column)
	}
	tx := db.GetTxFromContext(ctx, r.db)

	var values []string
	if err := tx.Model(&models.WorkOrderModel{}).
		Where("del_flag = ?", false).
		Distinct(column).
		Pluck(column, &values).Error; err != nil {
		return nil, fmt.Errorf("failed to list distinct %s values: %w", column, err)
	}
	return values, nil
}

func (r *WorkOrderRepository) CountByOrderIDPrefix(ctx context.Context, prefix string) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var n int64
	if err := tx.Model(&models.WorkOrderModel{}).
		Where("order_id LIKE ?", prefix+"%").
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count order ids: %w", err)
	}
	return n, nil
}

// TransitionStatus performs the conditional update that serializes all
// state changes. RowsAffected tells the caller whether the expected
// source state still held when the update ran.
func (r *WorkOrderRepository) TransitionStatus(ctx context.Context, id uint, from, to workorder.Status, set map[string]any) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	updates := map[string]any{"status": string(to)}
	for k, v := range set {
		updates[k] = v
	}

	result := tx.Model(&models.WorkOrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition work order: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
