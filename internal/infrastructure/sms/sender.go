package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"assetdesk/internal/shared/config"
)

// Sender delivers a captcha text message to a phone number.
type Sender interface {
	SendCaptcha(ctx context.Context, phone, captcha string) error
}

// HTTPSender posts captcha messages to the SMS gateway.
type HTTPSender struct {
	endpoint string
	appKey   string
	secret   string
	client   *http.Client
}

func NewHTTPSender(cfg *config.SMSConfig) *HTTPSender {
	return &HTTPSender{
		endpoint: cfg.Endpoint,
		appKey:   cfg.AppKey,
		secret:   cfg.Secret,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	AppKey  string `json:"app_key"`
	Secret  string `json:"secret"`
	Phone   string `json:"phone"`
	Content string `json:"content"`
}

type sendResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *HTTPSender) SendCaptcha(ctx context.Context, phone, captcha string) error {
	payload, err := json.Marshal(sendRequest{
		AppKey:  s.appKey,
		Secret:  s.secret,
		Phone:   phone,
		Content: fmt.Sprintf("Verification code %s for your maintenance request.", captcha),
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var body sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode sms response: %w", err)
	}
	if body.Code != 0 {
		return fmt.Errorf("sms gateway rejected message: %s", body.Message)
	}
	return nil
}
