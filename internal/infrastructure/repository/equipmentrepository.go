package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

var allowedEquipmentColumns = map[string]bool{
	"category":   true,
	"department": true,
	"brand":      true,
	"status":     true,
}

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func equipmentToModel(e *equipment.Equipment) *models.EquipmentModel {
	m := &models.EquipmentModel{
		ID:           e.ID,
		Category:     e.Category,
		Brand:        e.Brand,
		ModelNumber:  e.ModelNumber,
		SerialNumber: e.SerialNumber,
		Price:        e.Price,
		Guarantee:    e.Guarantee,
		Remark:       e.Remark,
		Status:       int(e.Status),
		User:         e.User,
		Owner:        e.Owner,
		Department:   e.Department,
		Edit:         e.Edit,
		DelFlag:      e.DelFlag,
	}
	if e.PurchasingTime != nil {
		m.PurchasingTime = datatypes.Date(*e.PurchasingTime)
	}
	return m
}

func equipmentToDomain(m *models.EquipmentModel) *equipment.Equipment {
	e := &equipment.Equipment{
		ID:           m.ID,
		Category:     m.Category,
		Brand:        m.Brand,
		ModelNumber:  m.ModelNumber,
		SerialNumber: m.SerialNumber,
		Price:        m.Price,
		Guarantee:    m.Guarantee,
		Remark:       m.Remark,
		Status:       equipment.Status(m.Status),
		User:         m.User,
		Owner:        m.Owner,
		Department:   m.Department,
		Edit:         m.Edit,
		DelFlag:      m.DelFlag,
		UpdatedAt:    m.UpdatedAt,
	}
	if t := time.Time(m.PurchasingTime); !t.IsZero() {
		e.PurchasingTime = &t
	}
	return e
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *equipment.Equipment) error {
	model := equipmentToModel(eq)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	eq.ID = model.ID
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id uint) (*equipment.Equipment, error) {
	var model models.EquipmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("equipment not found")
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}
	return equipmentToDomain(&model), nil
}

func (r *EquipmentRepository) List(ctx context.Context, filter equipment.Filter) ([]*equipment.Equipment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.EquipmentModel{})

	if !filter.IncludeDeleted {
		tx = tx.Where("del_flag = ?", false)
	}
	if filter.Category != nil {
		tx = tx.Where("category = ?", *filter.Category)
	}
	if filter.Department != nil {
		tx = tx.Where("department = ?", *filter.Department)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", int(*filter.Status))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count equipment: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		tx = tx.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.EquipmentModel
	if err := tx.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list equipment: %w", err)
	}

	items := make([]*equipment.Equipment, 0, len(rows))
	for i := range rows {
		items = append(items, equipmentToDomain(&rows[i]))
	}
	return items, total, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *equipment.Equipment) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.EquipmentModel{}).
		Where("id = ?", eq.ID).
		Updates(equipmentToModel(eq))
	if result.Error != nil {
		return fmt.Errorf("failed to update equipment: %w", result.Error)
	}
	return nil
}

func (r *EquipmentRepository) SoftDelete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.EquipmentModel{}).
		Where("id = ?", id).
		Update("del_flag", true)
	if result.Error != nil {
		return fmt.Errorf("failed to delete equipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("equipment not found")
	}
	return nil
}

func (r *EquipmentRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !allowedEquipmentColumns[column] {
		return nil, fmt.Errorf("column %q is not queryable", column)
	}
	tx := db.GetTxFromContext(ctx, r.db)

	var values []string
	if err := tx.Model(&models.EquipmentModel{}).
		Where("del_flag = ?", false).
		Distinct(column).
		Pluck(column, &values).Error; err != nil {
		return nil, fmt.Errorf("failed to list distinct %s values: %w", column, err)
	}
	return values, nil
}

// UpdateStatusWhen is the conditional status flip used by work order
// transitions. The guard loses when the asset moved state first.
func (r *EquipmentRepository) UpdateStatusWhen(ctx context.Context, id uint, from, to equipment.Status) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.EquipmentModel{}).
		Where("id = ? AND status = ?", id, int(from)).
		Update("status", int(to))
	if result.Error != nil {
		return false, fmt.Errorf("failed to update equipment status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *EquipmentRepository) CountByDepartment(ctx context.Context, departments []string) (map[string]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.EquipmentModel{}).
		Where("del_flag = ?", false)
	if len(departments) > 0 {
		tx = tx.Where("department IN ?", departments)
	}

	type row struct {
		Department string
		N          int64
	}
	var rows []row
	if err := tx.Select("department, COUNT(*) AS n").
		Group("department").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count equipment by department: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Department] = r.N
	}
	return counts, nil
}

func (r *EquipmentRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		N        int64
	}
	var rows []row
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.EquipmentModel{}).
		Where("del_flag = ?", false).
		Select("category, COUNT(*) AS n").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count equipment by category: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.N
	}
	return counts, nil
}

func (r *EquipmentRepository) CountByPurchasingAge(ctx context.Context, years int) (older, within int64, err error) {
	cutoff := time.Now().AddDate(-years, 0, 0)
	tx := db.GetTxFromContext(ctx, r.db)

	if err = tx.Model(&models.EquipmentModel{}).
		Where("del_flag = ? AND purchasing_time IS NOT NULL AND purchasing_time < ?", false, cutoff).
		Count(&older).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count old equipment: %w", err)
	}
	if err = tx.Model(&models.EquipmentModel{}).
		Where("del_flag = ? AND purchasing_time IS NOT NULL AND purchasing_time >= ?", false, cutoff).
		Count(&within).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count recent equipment: %w", err)
	}
	return older, within, nil
}
