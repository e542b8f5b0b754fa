package email

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/gomail.v2"

	"assetdesk/internal/shared/config"
)

// Sender delivers a dispatch notification to a maintenance worker.
type Sender interface {
	SendDispatchNotification(ctx context.Context, to, orderID, content, captcha string) error
}

// ErrSendTimeout is returned when the SMTP server did not accept the
// message within the configured window.
var ErrSendTimeout = fmt.Errorf("email send timed out")

type SMTPService struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
	timeout     time.Duration
	md          goldmark.Markdown
}

func NewSMTPService(cfg *config.EmailConfig) *SMTPService {
	return &SMTPService{
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		timeout:     time.Duration(cfg.SendTimeoutSec) * time.Second,
		md:          goldmark.New(),
	}
}

// SendDispatchNotification emails the worker the order id, the report
// content and the captcha they will quote on arrival. The markdown body
// is rendered to HTML; the raw markdown rides along as the plain part.
func (s *SMTPService) SendDispatchNotification(ctx context.Context, to, orderID, content, captcha string) error {
	body := fmt.Sprintf(
		"## Work order %s\n\nYou have been dispatched to a new work order.\n\n**Report**\n\n%s\n\n**Verification code**: `%s`\n\nQuote the code when closing the order on site.\n",
		orderID, content, captcha,
	)

	var html bytes.Buffer
	if err := s.md.Convert([]byte(body), &html); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Work order %s dispatched to you", orderID))
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", html.String())

	// gomail has no context support, so the dial runs in its own
	// goroutine and the caller gives up after the timeout. A late
	// success still counts as delivered on the wire; only the caller's
	// bookkeeping treats it as failed.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-timer.C:
		return ErrSendTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
