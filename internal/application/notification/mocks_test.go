package notification

import (
	"context"

	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/infrastructure/repository"
	"assetdesk/internal/shared/logger"
)

type mockCaptchaStore struct {
	StoreFunc func(ctx context.Context, caseID, captcha string) error
	GetFunc   func(ctx context.Context, caseID string) (string, error)
}

func (m *mockCaptchaStore) Store(ctx context.Context, caseID, captcha string) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, caseID, captcha)
	}
	return nil
}

func (m *mockCaptchaStore) Get(ctx context.Context, caseID string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, caseID)
	}
	return "", nil
}

type mockSMSSender struct {
	SendCaptchaFunc func(ctx context.Context, phone, captcha string) error
}

func (m *mockSMSSender) SendCaptcha(ctx context.Context, phone, captcha string) error {
	if m.SendCaptchaFunc != nil {
		return m.SendCaptchaFunc(ctx, phone, captcha)
	}
	return nil
}

type mockConfigRepository struct {
	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string) error
	AllFunc func(ctx context.Context) (map[string]string, error)
}

func (m *mockConfigRepository) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", nil
}

func (m *mockConfigRepository) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	return nil
}

func (m *mockConfigRepository) All(ctx context.Context) (map[string]string, error) {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	return nil, nil
}

type mockEmailSender struct {
	SendDispatchNotificationFunc func(ctx context.Context, to, orderID, content, captcha string) error
}

func (m *mockEmailSender) SendDispatchNotification(ctx context.Context, to, orderID, content, captcha string) error {
	if m.SendDispatchNotificationFunc != nil {
		return m.SendDispatchNotificationFunc(ctx, to, orderID, content, captcha)
	}
	return nil
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

type mockEmailHistoryStore struct {
	RecordFunc        func(ctx context.Context, record *repository.EmailRecord) error
	ExistsForCaseFunc func(ctx context.Context, caseID string) (bool, error)
}

func (m *mockEmailHistoryStore) Record(ctx context.Context, record *repository.EmailRecord) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, record)
	}
	return nil
}

func (m *mockEmailHistoryStore) ExistsForCase(ctx context.Context, caseID string) (bool, error) {
	if m.ExistsForCaseFunc != nil {
		return m.ExistsForCaseFunc(ctx, caseID)
	}
	return false, nil
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
