package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type ResendNotificationCommand struct {
	OrderID string
}

// ResendNotificationUseCase retries the dispatch email after a failed
// first attempt.
type ResendNotificationUseCase struct {
	orders   workorder.Repository
	profiles user.Repository
	notifier DispatchNotifier
	logger   logger.Interface
}

func NewResendNotificationUseCase(
	orders workorder.Repository,
	profiles user.Repository,
	notifier DispatchNotifier,
	logger logger.Interface,
) *ResendNotificationUseCase {
	return &ResendNotificationUseCase{
		orders:   orders,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *ResendNotificationUseCase) Execute(ctx context.Context, cmd ResendNotificationCommand) error {
	if cmd.OrderID == "" {
		return errors.NewValidationError("order is required")
	}

	order, err := uc.orders.GetByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return errors.NewNotFoundError("work order not found")
	}
	if order.PID == nil {
		return errors.NewValidationError("order has no assigned worker")
	}

	worker, err := uc.profiles.GetByID(ctx, *order.PID)
	if err != nil {
		return errors.NewNotFoundError("assigned worker not found")
	}

	if err := uc.notifier.Resend(ctx, order, worker); err != nil {
		return err
	}

	uc.logger.Infow("dispatch notification resent", "order_id", order.OrderID)
	return nil
}
