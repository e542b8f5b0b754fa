package usecases

import (
	"context"
	"fmt"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/logger"
)

type mockProfileRepository struct {
	CreateFunc             func(ctx context.Context, profile *user.Profile) error
	GetByIDFunc            func(ctx context.Context, id uint) (*user.Profile, error)
	GetByUsernameFunc      func(ctx context.Context, username string) (*user.Profile, error)
	GetByWorkNumberFunc    func(ctx context.Context, workNumber string) (*user.Profile, error)
	GetByWxIDFunc          func(ctx context.Context, wxID string) (*user.Profile, error)
	ListFunc               func(ctx context.Context, page, pageSize int) ([]*user.Profile, int64, error)
	UpdateFunc             func(ctx context.Context, profile *user.Profile) error
	UpdatePasswordHashFunc func(ctx context.Context, id uint, hash string) error
	UpdateRoleFunc         func(ctx context.Context, id uint, role authorization.Permission) error
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *user.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id uint) (*user.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockProfileRepository) GetByUsername(ctx context.Context, username string) (*user.Profile, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockProfileRepository) GetByWorkNumber(ctx context.Context, workNumber string) (*user.Profile, error) {
	if m.GetByWorkNumberFunc != nil {
		return m.GetByWorkNumberFunc(ctx, workNumber)
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockProfileRepository) GetByWxID(ctx context.Context, wxID string) (*user.Profile, error) {
	if m.GetByWxIDFunc != nil {
		return m.GetByWxIDFunc(ctx, wxID)
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockProfileRepository) List(ctx context.Context, page, pageSize int) ([]*user.Profile, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockProfileRepository) ListMaintenanceWorkers(ctx context.Context) ([]*user.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *user.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	if m.UpdatePasswordHashFunc != nil {
		return m.UpdatePasswordHashFunc(ctx, id, hash)
	}
	return nil
}

func (m *mockProfileRepository) UpdateRole(ctx context.Context, id uint, role authorization.Permission) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

// mockHasher treats "hashed:" + password as the stored hash.
type mockHasher struct{}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	GenerateFunc func(uid uint, name, dep string, rol authorization.Permission, pho, email string) (string, error)
}

func (m *mockTokenIssuer) Generate(uid uint, name, dep string, rol authorization.Permission, pho, email string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(uid, name, dep, rol, pho, email)
	}
	return fmt.Sprintf("token-%d", uid), nil
}

type mockSessionManager struct {
	EstablishFunc func(ctx context.Context, name, dep, token string) error
	ClearFunc     func(ctx context.Context, name, dep string) error
}

func (m *mockSessionManager) Establish(ctx context.Context, name, dep, token string) error {
	if m.EstablishFunc != nil {
		return m.EstablishFunc(ctx, name, dep, token)
	}
	return nil
}

func (m *mockSessionManager) Clear(ctx context.Context, name, dep string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, name, dep)
	}
	return nil
}

type mockTokenVerifier struct {
	IdentityFunc func(token string) (string, string, error)
}

func (m *mockTokenVerifier) Identity(token string) (string, string, error) {
	if m.IdentityFunc != nil {
		return m.IdentityFunc(token)
	}
	return "Zhang San", "it", nil
}

type mockTokenRevoker struct {
	InsertFunc func(ctx context.Context, token string) error
	inserted   []string
}

func (m *mockTokenRevoker) Insert(ctx context.Context, token string) error {
	m.inserted = append(m.inserted, token)
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, token)
	}
	return nil
}

type mockWxResolver struct {
	UserIDByCodeFunc func(ctx context.Context, code string) (string, error)
}

func (m *mockWxResolver) UserIDByCode(ctx context.Context, code string) (string, error) {
	if m.UserIDByCodeFunc != nil {
		return m.UserIDByCodeFunc(ctx, code)
	}
	return "", fmt.Errorf("no resolver")
}

type mockVersionStamper struct {
	bumped []string
}

func (m *mockVersionStamper) Bump(ctx context.Context, entity string) error {
	m.bumped = append(m.bumped, entity)
	return nil
}

type mockConfigRepository struct {
	values map[string]string
}

func newMockConfigRepository() *mockConfigRepository {
	return &mockConfigRepository{values: make(map[string]string)}
}

func (m *mockConfigRepository) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("not found")
	}
	return v, nil
}

func (m *mockConfigRepository) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigRepository) All(ctx context.Context) (map[string]string, error) {
	return m.values, nil
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
