package usecases

import (
	"context"
	"sync"
	"time"

	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/logger"
)

type mockPatrolRepository struct {
	CreatePlanFunc            func(ctx context.Context, plan *patrol.Plan, details []*patrol.Detail) error
	GetPlanFunc               func(ctx context.Context, id uint) (*patrol.Plan, error)
	GetPlanByPatrolIDFunc     func(ctx context.Context, patrolID string) (*patrol.Plan, error)
	ListPlansFunc             func(ctx context.Context, filter patrol.Filter) ([]*patrol.Plan, int64, error)
	ListDetailsFunc           func(ctx context.Context, planID uint) ([]*patrol.Detail, error)
	CountByPatrolIDPrefixFunc func(ctx context.Context, prefix string) (int64, error)
	CheckOffFunc              func(ctx context.Context, detailID, planID, eid uint) (bool, error)
	CancelPlanFunc            func(ctx context.Context, planID uint) (bool, error)
	CancelOverdueFunc         func(ctx context.Context, now string) (int64, error)
}

func (m *mockPatrolRepository) CreatePlan(ctx context.Context, plan *patrol.Plan, details []*patrol.Detail) error {
	if m.CreatePlanFunc != nil {
		return m.CreatePlanFunc(ctx, plan, details)
	}
	return nil
}

func (m *mockPatrolRepository) GetPlan(ctx context.Context, id uint) (*patrol.Plan, error) {
	if m.GetPlanFunc != nil {
		return m.GetPlanFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPatrolRepository) GetPlanByPatrolID(ctx context.Context, patrolID string) (*patrol.Plan, error) {
	if m.GetPlanByPatrolIDFunc != nil {
		return m.GetPlanByPatrolIDFunc(ctx, patrolID)
	}
	return nil, nil
}

func (m *mockPatrolRepository) ListPlans(ctx context.Context, filter patrol.Filter) ([]*patrol.Plan, int64, error) {
	if m.ListPlansFunc != nil {
		return m.ListPlansFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockPatrolRepository) ListDetails(ctx context.Context, planID uint) ([]*patrol.Detail, error) {
	if m.ListDetailsFunc != nil {
		return m.ListDetailsFunc(ctx, planID)
	}
	return nil, nil
}

func (m *mockPatrolRepository) CountByPatrolIDPrefix(ctx context.Context, prefix string) (int64, error) {
	if m.CountByPatrolIDPrefixFunc != nil {
		return m.CountByPatrolIDPrefixFunc(ctx, prefix)
	}
	return 0, nil
}

func (m *mockPatrolRepository) CheckOff(ctx context.Context, detailID, planID, eid uint) (bool, error) {
	if m.CheckOffFunc != nil {
		return m.CheckOffFunc(ctx, detailID, planID, eid)
	}
	return true, nil
}

func (m *mockPatrolRepository) CancelPlan(ctx context.Context, planID uint) (bool, error) {
	if m.CancelPlanFunc != nil {
		return m.CancelPlanFunc(ctx, planID)
	}
	return true, nil
}

func (m *mockPatrolRepository) CancelOverdue(ctx context.Context, now string) (int64, error) {
	if m.CancelOverdueFunc != nil {
		return m.CancelOverdueFunc(ctx, now)
	}
	return 0, nil
}

type mockProfileRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.Profile, error)
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

type fakeSequenceStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSequenceStore() *fakeSequenceStore {
	return &fakeSequenceStore{values: make(map[string]string)}
}

func (s *fakeSequenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeSequenceStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
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
