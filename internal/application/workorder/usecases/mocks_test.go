package usecases

import (
	"context"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/logger"
)

type mockOrderRepository struct {
	CreateFunc                func(ctx context.Context, order *workorder.WorkOrder) error
	GetByIDFunc               func(ctx context.Context, id uint) (*workorder.WorkOrder, error)
	GetByOrderIDFunc          func(ctx context.Context, orderID string) (*workorder.WorkOrder, error)
	ListFunc                  func(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error)
	DistinctValuesFunc        func(ctx context.Context, column string) ([]string, error)
	CountByOrderIDPrefixFunc  func(ctx context.Context, prefix string) (int64, error)
	TransitionStatusFunc      func(ctx context.Context, id uint, from, to workorder.Status, set map[string]any) (bool, error)
}

func (m *mockOrderRepository) Create(ctx context.Context, order *workorder.WorkOrder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*workorder.WorkOrder, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *mockOrderRepository) List(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockOrderRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if m.DistinctValuesFunc != nil {
		return m.DistinctValuesFunc(ctx, column)
	}
	return nil, nil
}

func (m *mockOrderRepository) CountByOrderIDPrefix(ctx context.Context, prefix string) (int64, error) {
	if m.CountByOrderIDPrefixFunc != nil {
		return m.CountByOrderIDPrefixFunc(ctx, prefix)
	}
	return 0, nil
}

func (m *mockOrderRepository) TransitionStatus(ctx context.Context, id uint, from, to workorder.Status, set map[string]any) (bool, error) {
	if m.TransitionStatusFunc != nil {
		return m.TransitionStatusFunc(ctx, id, from, to, set)
	}
	return true, nil
}

type mockHistoryRepository struct {
	AppendFunc         func(ctx context.Context, entry *workorder.HistoryEntry) error
	ListByOrderFunc    func(ctx context.Context, oid uint) ([]*workorder.HistoryEntry, error)
	LatestByStatusFunc func(ctx context.Context, oid uint, status workorder.Status) (*workorder.HistoryEntry, error)
}

func (m *mockHistoryRepository) Append(ctx context.Context, entry *workorder.HistoryEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}

func (m *mockHistoryRepository) ListByOrder(ctx context.Context, oid uint) ([]*workorder.HistoryEntry, error) {
	if m.ListByOrderFunc != nil {
		return m.ListByOrderFunc(ctx, oid)
	}
	return nil, nil
}

func (m *mockHistoryRepository) LatestByStatus(ctx context.Context, oid uint, status workorder.Status) (*workorder.HistoryEntry, error) {
	if m.LatestByStatusFunc != nil {
		return m.LatestByStatusFunc(ctx, oid, status)
	}
	return nil, nil
}

type mockEquipmentRepository struct {
	GetByIDFunc          func(ctx context.Context, id uint) (*equipment.Equipment, error)
	UpdateStatusWhenFunc func(ctx context.Context, id uint, from, to equipment.Status) (bool, error)
}

func (m *mockEquipmentRepository) Create(ctx context.Context, eq *equipment.Equipment) error {
	return nil
}

func (m *mockEquipmentRepository) GetByID(ctx context.Context, id uint) (*equipment.Equipment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockEquipmentRepository) List(ctx context.Context, filter equipment.Filter) ([]*equipment.Equipment, int64, error) {
	return nil, 0, nil
}

func (m *mockEquipmentRepository) Update(ctx context.Context, eq *equipment.Equipment) error {
	return nil
}

func (m *mockEquipmentRepository) SoftDelete(ctx context.Context, id uint) error {
	return nil
}

func (m *mockEquipmentRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	return nil, nil
}

func (m *mockEquipmentRepository) UpdateStatusWhen(ctx context.Context, id uint, from, to equipment.Status) (bool, error) {
	if m.UpdateStatusWhenFunc != nil {
		return m.UpdateStatusWhenFunc(ctx, id, from, to)
	}
	return true, nil
}

func (m *mockEquipmentRepository) CountByDepartment(ctx context.Context, departments []string) (map[string]int64, error) {
	return nil, nil
}

func (m *mockEquipmentRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}

func (m *mockEquipmentRepository) CountByPurchasingAge(ctx context.Context, years int) (int64, int64, error) {
	return 0, 0, nil
}

type mockProfileRepository struct {
	GetByIDFunc                func(ctx context.Context, id uint) (*user.Profile, error)
	ListMaintenanceWorkersFunc func(ctx context.Context) ([]*user.Profile, error)
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *user.Profile) error {
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id uint) (*user.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProfileRepository) GetByUsername(ctx context.Context, username string) (*user.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepository) GetByWorkNumber(ctx context.Context, workNumber string) (*user.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepository) GetByWxID(ctx context.Context, wxID string) (*user.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepository) List(ctx context.Context, page, pageSize int) ([]*user.Profile, int64, error) {
	return nil, 0, nil
}

func (m *mockProfileRepository) ListMaintenanceWorkers(ctx context.Context) ([]*user.Profile, error) {
	if m.ListMaintenanceWorkersFunc != nil {
		return m.ListMaintenanceWorkersFunc(ctx)
	}
	return nil, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *user.Profile) error {
	return nil
}

func (m *mockProfileRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return nil
}

func (m *mockProfileRepository) UpdateRole(ctx context.Context, id uint, role authorization.Permission) error {
	return nil
}

type mockEditHistoryRepository struct {
	AppendFunc func(ctx context.Context, entry *equipment.EditEntry) error
	entries    []*equipment.EditEntry
}

func (m *mockEditHistoryRepository) Append(ctx context.Context, entry *equipment.EditEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockEditHistoryRepository) ListByEquipment(ctx context.Context, eid uint) ([]*equipment.EditEntry, error) {
	return m.entries, nil
}

type mockCaptchaVerifier struct {
	VerifyFunc func(ctx context.Context, caseID, presented string) error
}

func (m *mockCaptchaVerifier) Verify(ctx context.Context, caseID, presented string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, caseID, presented)
	}
	return nil
}

type mockDispatchNotifier struct {
	NotifyDispatchFunc func(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error
	ResendFunc         func(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error
}

func (m *mockDispatchNotifier) NotifyDispatch(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error {
	if m.NotifyDispatchFunc != nil {
		return m.NotifyDispatchFunc(ctx, order, worker)
	}
	return nil
}

func (m *mockDispatchNotifier) Resend(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, order, worker)
	}
	return nil
}

// mockTxManager runs the function inline; atomicity is covered by the
// repository integration tests.
type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                {}
func (m *mockLogger) Info(msg string, args ...any)                 {}
func (m *mockLogger) Warn(msg string, args ...any)                 {}
func (m *mockLogger) Error(msg string, args ...any)                {}
func (m *mockLogger) Debugw(msg string, keysAndValues ...any)      {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)       {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)       {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any)      {}
func (m *mockLogger) With(args ...any) logger.Interface            { return m }
func (m *mockLogger) Named(name string) logger.Interface           { return m }
