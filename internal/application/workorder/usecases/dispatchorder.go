package usecases

import (
	"context"
	"fmt"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type DispatchOrderCommand struct {
	OrderID  uint
	WorkerID uint
	Remark   string
	Operator string
}

type DispatchOrderResult struct {
	WorkerName string
}

// DispatchOrderUseCase assigns a maintenance worker to a reported order
// and emails them the fault report. The email is best effort: the
// transition stays committed even when the send fails.
type DispatchOrderUseCase struct {
	orders   workorder.Repository
	history  workorder.HistoryRepository
	profiles user.Repository
	notifier DispatchNotifier
	txMgr    TransactionManager
	logger   logger.Interface
}

func NewDispatchOrderUseCase(
	orders workorder.Repository,
	history workorder.HistoryRepository,
	profiles user.Repository,
	notifier DispatchNotifier,
	txMgr TransactionManager,
	logger logger.Interface,
) *DispatchOrderUseCase {
	return &DispatchOrderUseCase{
		orders:   orders,
		history:  history,
		profiles: profiles,
		notifier: notifier,
		txMgr:    txMgr,
		logger:   logger,
	}
}

func (uc *DispatchOrderUseCase) Execute(ctx context.Context, cmd DispatchOrderCommand) (*DispatchOrderResult, error) {
	if cmd.OrderID == 0 || cmd.WorkerID == 0 {
		return nil, errors.NewValidationError("order and worker are required")
	}

	worker, err := uc.profiles.GetByID(ctx, cmd.WorkerID)
	if err != nil {
		return nil, errors.NewNotFoundError("worker not found")
	}
	if !worker.IsMaintenance() {
		return nil, errors.NewValidationError("profile is not a maintenance worker")
	}

	order, err := uc.orders.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, errors.NewNotFoundError("work order not found")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		moved, err := uc.orders.TransitionStatus(txCtx, order.ID, workorder.StatusReported, workorder.StatusDispatched, map[string]any{
			"pid":  worker.ID,
			"name": worker.Name,
		})
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictStatusError("order already left the reported state")
		}

		return uc.history.Append(txCtx, &workorder.HistoryEntry{
			OID:     order.ID,
			Status:  workorder.StatusDispatched,
			Name:    cmd.Operator,
			Remark:  cmd.Remark,
			Content: fmt.Sprintf("dispatched to %s", worker.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("work order dispatched", "order_id", order.OrderID, "worker", worker.Name)

	// Past this point the transition is committed. A notification
	// failure reports partial success; it must not undo the dispatch.
	if err := uc.notifier.NotifyDispatch(ctx, order, worker); err != nil {
		return &DispatchOrderResult{WorkerName: worker.Name}, err
	}
	return &DispatchOrderResult{WorkerName: worker.Name}, nil
}
