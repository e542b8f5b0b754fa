package notification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/infrastructure/sms"
	"assetdesk/internal/shared/constants"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

// ConfigToggleSendSMS is the it_config key gating outbound text messages.
const ConfigToggleSendSMS = "sendSms"

// CaptchaStore persists issued captchas so they survive cache loss.
type CaptchaStore interface {
	Store(ctx context.Context, caseID, captcha string) error
	Get(ctx context.Context, caseID string) (string, error)
}

// CaptchaService issues and checks the one-time codes that stand in for
// authentication on the unauthenticated maintenance endpoints.
type CaptchaService struct {
	captchas   CaptchaStore
	cache      cache.Store
	sender     sms.Sender
	config     user.ConfigRepository
	log        logger.Interface
	window     time.Duration
	captchaTTL time.Duration
}

func NewCaptchaService(
	captchas CaptchaStore,
	cacheStore cache.Store,
	sender sms.Sender,
	config user.ConfigRepository,
	log logger.Interface,
	windowSeconds int,
) *CaptchaService {
	return &CaptchaService{
		captchas:   captchas,
		cache:      cacheStore,
		sender:     sender,
		config:     config,
		log:        log.Named("captcha"),
		window:     time.Duration(windowSeconds) * time.Second,
		captchaTTL: 10 * time.Minute,
	}
}

// Issue generates a six digit code for the given case, rate limited per
// equipment, and texts it to phone when the sendSms toggle is on.
func (s *CaptchaService) Issue(ctx context.Context, caseID string, eid uint, phone string) error {
	windowKey := constants.SMSWindowKey(eid)
	open, err := s.cache.Exists(ctx, windowKey)
	if err != nil {
		return fmt.Errorf("failed to check sms window: %w", err)
	}
	if open {
		return errors.NewCaptchaTooFrequentError()
	}

	captcha, err := generateCaptcha()
	if err != nil {
		return fmt.Errorf("failed to generate captcha: %w", err)
	}

	if err := s.captchas.Store(ctx, caseID, captcha); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, constants.CaptchaKey(caseID), captcha, s.captchaTTL); err != nil {
		return fmt.Errorf("failed to cache captcha: %w", err)
	}
	if err := s.cache.Set(ctx, windowKey, "1", s.window); err != nil {
		return fmt.Errorf("failed to open sms window: %w", err)
	}

	if !s.toggleEnabled(ctx, ConfigToggleSendSMS) {
		s.log.Infow("sms sending disabled, captcha stored only", "case_id", caseID)
		return nil
	}
	if err := s.sender.SendCaptcha(ctx, phone, captcha); err != nil {
		s.log.Errorw("failed to send captcha sms", "case_id", caseID, "error", err)
		return fmt.Errorf("failed to send captcha: %w", err)
	}
	return nil
}

// Verify compares the presented code with the stored one, preferring
// the cache and falling back to the table.
func (s *CaptchaService) Verify(ctx context.Context, caseID, presented string) error {
	if presented == "" {
		return errors.NewInvalidCaptchaError()
	}

	stored, ok, err := s.cache.Get(ctx, constants.CaptchaKey(caseID))
	if err != nil {
		return fmt.Errorf("failed to read cached captcha: %w", err)
	}
	if !ok {
		stored, err = s.captchas.Get(ctx, caseID)
		if err != nil {
			return errors.NewInvalidCaptchaError()
		}
	}

	if stored != presented {
		return errors.NewInvalidCaptchaError()
	}
	return nil
}

func (s *CaptchaService) toggleEnabled(ctx context.Context, key string) bool {
	value, err := s.config.Get(ctx, key)
	if err != nil {
		return false
	}
	return value == "1"
}

func generateCaptcha() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
