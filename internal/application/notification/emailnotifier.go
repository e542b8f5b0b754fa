package notification

import (
	"context"
	stderrors "errors"
	"fmt"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/infrastructure/email"
	"assetdesk/internal/infrastructure/repository"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

// ConfigToggleSendEmail is the it_config key gating outbound email.
const ConfigToggleSendEmail = "sendEmail"

// EmailHistoryStore records one sent notification per case.
type EmailHistoryStore interface {
	Record(ctx context.Context, record *repository.EmailRecord) error
	ExistsForCase(ctx context.Context, caseID string) (bool, error)
}

// EmailNotifier sends the dispatch notification to the assigned worker.
// The email carries the original fault report and a captcha the worker
// later quotes to close the order.
type EmailNotifier struct {
	sender   email.Sender
	history  workorder.HistoryRepository
	records  EmailHistoryStore
	captchas CaptchaStore
	config   user.ConfigRepository
	log      logger.Interface
}

func NewEmailNotifier(
	sender email.Sender,
	history workorder.HistoryRepository,
	records EmailHistoryStore,
	captchas CaptchaStore,
	config user.ConfigRepository,
	log logger.Interface,
) *EmailNotifier {
	return &EmailNotifier{
		sender:   sender,
		history:  history,
		records:  records,
		captchas: captchas,
		config:   config,
		log:      log.Named("email-notifier"),
	}
}

// NotifyDispatch delivers the dispatch email. The surrounding
// transition is already committed; failures here surface as
// notification errors, never as a rollback.
func (n *EmailNotifier) NotifyDispatch(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error {
	if !n.toggleEnabled(ctx) {
		n.log.Infow("email sending disabled, skipping dispatch notification", "order_id", order.OrderID)
		return nil
	}
	if worker.Email == "" {
		return errors.NewValidationError("assigned worker has no email address")
	}

	report, err := n.history.LatestByStatus(ctx, order.ID, workorder.StatusReported)
	if err != nil {
		return errors.NewNotifyContentAbsentError()
	}

	captcha, err := generateCaptcha()
	if err != nil {
		return fmt.Errorf("failed to generate captcha: %w", err)
	}
	if err := n.captchas.Store(ctx, order.OrderID, captcha); err != nil {
		return err
	}

	if err := n.sender.SendDispatchNotification(ctx, worker.Email, order.OrderID, report.Content, captcha); err != nil {
		if stderrors.Is(err, email.ErrSendTimeout) {
			n.log.Warnw("dispatch email timed out", "order_id", order.OrderID, "to", worker.Email)
			return errors.NewNotifyTimeoutError()
		}
		n.log.Errorw("dispatch email failed", "order_id", order.OrderID, "error", err)
		return errors.NewNotifyTimeoutError()
	}

	if err := n.records.Record(ctx, &repository.EmailRecord{
		CaseID:  order.OrderID,
		Email:   worker.Email,
		Captcha: captcha,
		Content: report.Content,
	}); err != nil {
		// The mail left the building; losing the bookkeeping row is
		// logged but not surfaced.
		n.log.Errorw("failed to record sent email", "order_id", order.OrderID, "error", err)
	}
	return nil
}

// Resend retries a failed dispatch notification. A recorded send means
// the first attempt succeeded and the retry is rejected.
func (n *EmailNotifier) Resend(ctx context.Context, order *workorder.WorkOrder, worker *user.Profile) error {
	sent, err := n.records.ExistsForCase(ctx, order.OrderID)
	if err != nil {
		return err
	}
	if sent {
		return errors.NewNotifyAlreadySentError()
	}
	return n.NotifyDispatch(ctx, order, worker)
}

func (n *EmailNotifier) toggleEnabled(ctx context.Context) bool {
	value, err := n.config.Get(ctx, ConfigToggleSendEmail)
	if err != nil {
		return false
	}
	return value == "1"
}
