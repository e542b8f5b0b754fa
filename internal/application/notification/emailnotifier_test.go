package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/infrastructure/email"
	"assetdesk/internal/infrastructure/repository"
	"assetdesk/internal/shared/errors"
)

type notifierFixture struct {
	notifier *EmailNotifier
	sender   *mockEmailSender
	history  *mockHistoryRepository
	records  *mockEmailHistoryStore
	captchas *mockCaptchaStore
	config   *mockConfigRepository
}

func newNotifierFixture() *notifierFixture {
	f := &notifierFixture{
		sender:   &mockEmailSender{},
		records:  &mockEmailHistoryStore{},
		captchas: &mockCaptchaStore{},
		config: &mockConfigRepository{
			GetFunc: func(ctx context.Context, key string) (string, error) { return "1", nil },
		},
		history: &mockHistoryRepository{
			LatestByStatusFunc: func(ctx context.Context, oid uint, status workorder.Status) (*workorder.HistoryEntry, error) {
				return &workorder.HistoryEntry{OID: oid, Status: workorder.StatusReported, Content: "screen stays black"}, nil
			},
		},
	}
	f.notifier = NewEmailNotifier(f.sender, f.history, f.records, f.captchas, f.config, testLogger())
	return f
}

func testOrder() *workorder.WorkOrder {
	return &workorder.WorkOrder{ID: 42, OrderID: "20250601001"}
}

func testWorker() *user.Profile {
	return &user.Profile{ID: 3, Name: "li hua", Email: "lihua@example.com"}
}

func TestEmailNotifierNotifyDispatch(t *testing.T) {
	f := newNotifierFixture()

	var sentTo, sentOrder, sentContent, sentCaptcha string
	f.sender.SendDispatchNotificationFunc = func(ctx context.Context, to, orderID, content, captcha string) error {
		sentTo, sentOrder, sentContent, sentCaptcha = to, orderID, content, captcha
		return nil
	}

	var stored string
	f.captchas.StoreFunc = func(ctx context.Context, caseID, captcha string) error {
		require.Equal(t, "20250601001", caseID)
		stored = captcha
		return nil
	}

	var recorded *repository.EmailRecord
	f.records.RecordFunc = func(ctx context.Context, record *repository.EmailRecord) error {
		recorded = record
		return nil
	}

	err := f.notifier.NotifyDispatch(context.Background(), testOrder(), testWorker())
	require.NoError(t, err)

	assert.Equal(t, "lihua@example.com", sentTo)
	assert.Equal(t, "20250601001", sentOrder)
	assert.Equal(t, "screen stays black", sentContent)
	assert.Len(t, sentCaptcha, 6)
	assert.Equal(t, stored, sentCaptcha)

	require.NotNil(t, recorded)
	assert.Equal(t, "20250601001", recorded.CaseID)
	assert.Equal(t, sentCaptcha, recorded.Captcha)
}

func TestEmailNotifierSkipsWhenToggledOff(t *testing.T) {
	f := newNotifierFixture()
	f.config.GetFunc = func(ctx context.Context, key string) (string, error) { return "0", nil }

	sent := false
	f.sender.SendDispatchNotificationFunc = func(ctx context.Context, to, orderID, content, captcha string) error {
		sent = true
		return nil
	}

	require.NoError(t, f.notifier.NotifyDispatch(context.Background(), testOrder(), testWorker()))
	assert.False(t, sent)
}

func TestEmailNotifierRejectsWorkerWithoutEmail(t *testing.T) {
	f := newNotifierFixture()

	worker := testWorker()
	worker.Email = ""

	err := f.notifier.NotifyDispatch(context.Background(), testOrder(), worker)
	require.Error(t, err)
}

func TestEmailNotifierMissingReportContent(t *testing.T) {
	f := newNotifierFixture()
	f.history.LatestByStatusFunc = func(ctx context.Context, oid uint, status workorder.Status) (*workorder.HistoryEntry, error) {
		return nil, fmt.Errorf("no rows")
	}

	err := f.notifier.NotifyDispatch(context.Background(), testOrder(), testWorker())
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotifyContentAbsent, appErr.Errcode)
}

func TestEmailNotifierTimeoutSurfacesAsNotifyTimeout(t *testing.T) {
	f := newNotifierFixture()
	f.sender.SendDispatchNotificationFunc = func(ctx context.Context, to, orderID, content, captcha string) error {
		return email.ErrSendTimeout
	}

	recorded := false
	f.records.RecordFunc = func(ctx context.Context, record *repository.EmailRecord) error {
		recorded = true
		return nil
	}

	err := f.notifier.NotifyDispatch(context.Background(), testOrder(), testWorker())
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotifyTimeout, appErr.Errcode)
	assert.False(t, recorded)
}

func TestEmailNotifierResend(t *testing.T) {
	f := newNotifierFixture()

	f.records.ExistsForCaseFunc = func(ctx context.Context, caseID string) (bool, error) { return true, nil }
	err := f.notifier.Resend(context.Background(), testOrder(), testWorker())
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotifyAlreadySent, appErr.Errcode)

	f.records.ExistsForCaseFunc = func(ctx context.Context, caseID string) (bool, error) { return false, nil }
	sent := false
	f.sender.SendDispatchNotificationFunc = func(ctx context.Context, to, orderID, content, captcha string) error {
		sent = true
		return nil
	}
	require.NoError(t, f.notifier.Resend(context.Background(), testOrder(), testWorker()))
	assert.True(t, sent)
}
