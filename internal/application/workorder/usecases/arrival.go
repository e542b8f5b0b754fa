package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type ArrivalCommand struct {
	OrderID string
	Name    string
	Phone   string
}

// ArrivalUseCase records the worker reaching the site. The endpoint is
// unauthenticated, so name plus phone must match the dispatched worker's
// profile as proof of possession.
type ArrivalUseCase struct {
	orders   workorder.Repository
	history  workorder.HistoryRepository
	profiles user.Repository
	txMgr    TransactionManager
	logger   logger.Interface
}

func NewArrivalUseCase(
	orders workorder.Repository,
	history workorder.HistoryRepository,
	profiles user.Repository,
	txMgr TransactionManager,
	logger logger.Interface,
) *ArrivalUseCase {
	return &ArrivalUseCase{
		orders:   orders,
		history:  history,
		profiles: profiles,
		txMgr:    txMgr,
		logger:   logger,
	}
}

func (uc *ArrivalUseCase) Execute(ctx context.Context, cmd ArrivalCommand) error {
	if cmd.OrderID == "" || cmd.Name == "" || cmd.Phone == "" {
		return errors.NewValidationError("order, name and phone are required")
	}

	order, err := uc.orders.GetByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return errors.NewNotFoundError("work order not found")
	}

	if err := verifyAssignedWorker(ctx, uc.profiles, order, cmd.Name, cmd.Phone); err != nil {
		return err
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		moved, err := uc.orders.TransitionStatus(txCtx, order.ID, workorder.StatusDispatched, workorder.StatusHandling, nil)
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictStatusError("order already left the dispatched state")
		}

		return uc.history.Append(txCtx, &workorder.HistoryEntry{
			OID:     order.ID,
			Status:  workorder.StatusHandling,
			Name:    cmd.Name,
			Phone:   cmd.Phone,
			Content: "worker arrived on site",
		})
	})
	if txErr != nil {
		return txErr
	}

	uc.logger.Infow("worker arrived", "order_id", order.OrderID, "worker", cmd.Name)
	return nil
}

// verifyAssignedWorker is the shared proof-of-possession check on the
// unauthenticated field endpoints.
func verifyAssignedWorker(ctx context.Context, profiles user.Repository, order *workorder.WorkOrder, name, phone string) error {
	if order.PID == nil {
		return errors.NewIdentityMismatchError()
	}
	worker, err := profiles.GetByID(ctx, *order.PID)
	if err != nil {
		return errors.NewIdentityMismatchError()
	}
	if worker.Name != name || worker.Phone != phone {
		return errors.NewIdentityMismatchError()
	}
	return nil
}
