package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/shared/errors"
)

func newCaptchaFixture(sender *mockSMSSender, config *mockConfigRepository) (*CaptchaService, *cache.MemoryStore, *mockCaptchaStore) {
	store := cache.NewMemoryStore()
	captchas := &mockCaptchaStore{}
	svc := NewCaptchaService(captchas, store, sender, config, testLogger(), 60)
	return svc, store, captchas
}

func TestCaptchaServiceIssueStoresAndSends(t *testing.T) {
	var sentPhone, sentCode string
	sender := &mockSMSSender{
		SendCaptchaFunc: func(ctx context.Context, phone, captcha string) error {
			sentPhone, sentCode = phone, captcha
			return nil
		},
	}
	config := &mockConfigRepository{
		GetFunc: func(ctx context.Context, key string) (string, error) { return "1", nil },
	}

	var storedCode string
	svc, _, captchas := newCaptchaFixture(sender, config)
	captchas.StoreFunc = func(ctx context.Context, caseID, captcha string) error {
		storedCode = captcha
		return nil
	}

	err := svc.Issue(context.Background(), "13800138000", 7, "13800138000")
	require.NoError(t, err)

	assert.Equal(t, "13800138000", sentPhone)
	assert.Len(t, sentCode, 6)
	assert.Equal(t, storedCode, sentCode)
}

func TestCaptchaServiceIssueRateLimited(t *testing.T) {
	config := &mockConfigRepository{
		GetFunc: func(ctx context.Context, key string) (string, error) { return "1", nil },
	}
	svc, store, _ := newCaptchaFixture(&mockSMSSender{}, config)

	require.NoError(t, svc.Issue(context.Background(), "case-a", 7, "13800138000"))

	err := svc.Issue(context.Background(), "case-a", 7, "13800138000")
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeCaptchaTooFrequent, appErr.Errcode)

	// a different equipment has its own window
	require.NoError(t, svc.Issue(context.Background(), "case-b", 8, "13800138001"))

	// the window reopens once it expires
	store.SetClock(func() time.Time { return time.Now().Add(2 * time.Minute) })
	require.NoError(t, svc.Issue(context.Background(), "case-a", 7, "13800138000"))
}

func TestCaptchaServiceIssueSkipsSendWhenToggledOff(t *testing.T) {
	sent := false
	sender := &mockSMSSender{
		SendCaptchaFunc: func(ctx context.Context, phone, captcha string) error {
			sent = true
			return nil
		},
	}
	config := &mockConfigRepository{
		GetFunc: func(ctx context.Context, key string) (string, error) { return "0", nil },
	}
	var stored string
	svc, _, captchas := newCaptchaFixture(sender, config)
	captchas.StoreFunc = func(ctx context.Context, caseID, captcha string) error {
		stored = captcha
		return nil
	}

	require.NoError(t, svc.Issue(context.Background(), "case-a", 7, "13800138000"))
	assert.False(t, sent)

	// the code is still issued and verifiable for manual delivery
	require.NoError(t, svc.Verify(context.Background(), "case-a", stored))
}

func TestCaptchaServiceVerify(t *testing.T) {
	config := &mockConfigRepository{
		GetFunc: func(ctx context.Context, key string) (string, error) { return "1", nil },
	}

	var issued string
	sender := &mockSMSSender{
		SendCaptchaFunc: func(ctx context.Context, phone, captcha string) error {
			issued = captcha
			return nil
		},
	}
	svc, _, _ := newCaptchaFixture(sender, config)
	require.NoError(t, svc.Issue(context.Background(), "20250601001", 7, "13800138000"))

	require.NoError(t, svc.Verify(context.Background(), "20250601001", issued))

	wrong := "999999"
	if wrong == issued {
		wrong = "999998"
	}
	err := svc.Verify(context.Background(), "20250601001", wrong)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeInvalidCaptcha, appErr.Errcode)

	err = svc.Verify(context.Background(), "20250601001", "")
	appErr = errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeInvalidCaptcha, appErr.Errcode)
}

func TestCaptchaServiceVerifyFallsBackToTable(t *testing.T) {
	config := &mockConfigRepository{}
	svc, _, captchas := newCaptchaFixture(&mockSMSSender{}, config)
	captchas.GetFunc = func(ctx context.Context, caseID string) (string, error) {
		return "123456", nil
	}

	// nothing cached, the persisted row still answers
	require.NoError(t, svc.Verify(context.Background(), "20250601001", "123456"))
}
