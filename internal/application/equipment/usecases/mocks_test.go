package usecases

import (
	"context"
	"fmt"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/shared/logger"
)

type mockEquipmentRepository struct {
	CreateFunc               func(ctx context.Context, eq *equipment.Equipment) error
	GetByIDFunc              func(ctx context.Context, id uint) (*equipment.Equipment, error)
	ListFunc                 func(ctx context.Context, filter equipment.Filter) ([]*equipment.Equipment, int64, error)
	UpdateFunc               func(ctx context.Context, eq *equipment.Equipment) error
	SoftDeleteFunc           func(ctx context.Context, id uint) error
	DistinctValuesFunc       func(ctx context.Context, column string) ([]string, error)
	UpdateStatusWhenFunc     func(ctx context.Context, id uint, from, to equipment.Status) (bool, error)
	CountByDepartmentFunc    func(ctx context.Context, departments []string) (map[string]int64, error)
	CountByCategoryFunc      func(ctx context.Context) (map[string]int64, error)
	CountByPurchasingAgeFunc func(ctx context.Context, years int) (int64, int64, error)
}

func (m *mockEquipmentRepository) Create(ctx context.Context, eq *equipment.Equipment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, eq)
	}
	return nil
}

func (m *mockEquipmentRepository) GetByID(ctx context.Context, id uint) (*equipment.Equipment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockEquipmentRepository) List(ctx context.Context, filter equipment.Filter) ([]*equipment.Equipment, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockEquipmentRepository) Update(ctx context.Context, eq *equipment.Equipment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, eq)
	}
	return nil
}

func (m *mockEquipmentRepository) SoftDelete(ctx context.Context, id uint) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockEquipmentRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if m.DistinctValuesFunc != nil {
		return m.DistinctValuesFunc(ctx, column)
	}
	return nil, nil
}

func (m *mockEquipmentRepository) UpdateStatusWhen(ctx context.Context, id uint, from, to equipment.Status) (bool, error) {
	if m.UpdateStatusWhenFunc != nil {
		return m.UpdateStatusWhenFunc(ctx, id, from, to)
	}
	return true, nil
}

func (m *mockEquipmentRepository) CountByDepartment(ctx context.Context, departments []string) (map[string]int64, error) {
	if m.CountByDepartmentFunc != nil {
		return m.CountByDepartmentFunc(ctx, departments)
	}
	return nil, nil
}

func (m *mockEquipmentRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx)
	}
	return nil, nil
}

func (m *mockEquipmentRepository) CountByPurchasingAge(ctx context.Context, years int) (int64, int64, error) {
	if m.CountByPurchasingAgeFunc != nil {
		return m.CountByPurchasingAgeFunc(ctx, years)
	}
	return 0, 0, nil
}

type mockDetailRepository struct {
	UpsertFunc         func(ctx context.Context, detail *equipment.ComputerDetail) error
	GetByEquipmentFunc func(ctx context.Context, eid uint) (*equipment.ComputerDetail, error)
	SoftDeleteFunc     func(ctx context.Context, eid uint) error
}

func (m *mockDetailRepository) Upsert(ctx context.Context, detail *equipment.ComputerDetail) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, detail)
	}
	return nil
}

func (m *mockDetailRepository) GetByEquipment(ctx context.Context, eid uint) (*equipment.ComputerDetail, error) {
	if m.GetByEquipmentFunc != nil {
		return m.GetByEquipmentFunc(ctx, eid)
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockDetailRepository) SoftDelete(ctx context.Context, eid uint) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, eid)
	}
	return nil
}

type mockEditHistoryRepository struct {
	AppendFunc          func(ctx context.Context, entry *equipment.EditEntry) error
	ListByEquipmentFunc func(ctx context.Context, eid uint) ([]*equipment.EditEntry, error)
}

func (m *mockEditHistoryRepository) Append(ctx context.Context, entry *equipment.EditEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}

func (m *mockEditHistoryRepository) ListByEquipment(ctx context.Context, eid uint) ([]*equipment.EditEntry, error) {
	if m.ListByEquipmentFunc != nil {
		return m.ListByEquipmentFunc(ctx, eid)
	}
	return nil, nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockVersionStamper struct {
	bumped []string
}

func (m *mockVersionStamper) Bump(ctx context.Context, entity string) error {
	m.bumped = append(m.bumped, entity)
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
