package usecases

import (
	"context"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type CancelOrderCommand struct {
	OrderID string
	Captcha string
	Name    string
	Remark  string
}

// CancelOrderUseCase aborts an order from any live state and returns
// the equipment to service.
type CancelOrderUseCase struct {
	orders    workorder.Repository
	history   workorder.HistoryRepository
	equipment equipment.Repository
	edits     equipment.EditHistoryRepository
	captcha   CaptchaVerifier
	txMgr     TransactionManager
	logger    logger.Interface
}

func NewCancelOrderUseCase(
	orders workorder.Repository,
	history workorder.HistoryRepository,
	equipmentRepo equipment.Repository,
	edits equipment.EditHistoryRepository,
	captcha CaptchaVerifier,
	txMgr TransactionManager,
	logger logger.Interface,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orders:    orders,
		history:   history,
		equipment: equipmentRepo,
		edits:     edits,
		captcha:   captcha,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *CancelOrderUseCase) Execute(ctx context.Context, cmd CancelOrderCommand) error {
	if cmd.OrderID == "" {
		return errors.NewValidationError("order is required")
	}

	if err := uc.captcha.Verify(ctx, cmd.OrderID, cmd.Captcha); err != nil {
		return err
	}

	order, err := uc.orders.GetByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return errors.NewNotFoundError("work order not found")
	}
	if order.Status.IsTerminal() {
		return errors.NewConflictStatusError("order is already closed")
	}
	if !order.Status.CanTransitionTo(workorder.StatusCancelled) {
		return errors.NewConflictStatusError("order cannot be cancelled from its current state")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		moved, err := uc.orders.TransitionStatus(txCtx, order.ID, order.Status, workorder.StatusCancelled, nil)
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictStatusError("order state changed while cancelling")
		}

		// The equipment only left service if the order got that far;
		// the conditional flip is a no-op otherwise.
		restored, err := uc.equipment.UpdateStatusWhen(txCtx, order.EID, equipment.StatusUnderRepair, equipment.StatusInUse)
		if err != nil {
			return err
		}
		if restored {
			if err := uc.edits.Append(txCtx, &equipment.EditEntry{
				EID:     order.EID,
				Content: "returned to service",
				Edit:    cmd.Name,
			}); err != nil {
				return err
			}
		}

		return uc.history.Append(txCtx, &workorder.HistoryEntry{
			OID:     order.ID,
			Status:  workorder.StatusCancelled,
			Name:    cmd.Name,
			Remark:  cmd.Remark,
			Content: "order cancelled",
		})
	})
	if txErr != nil {
		return txErr
	}

	uc.logger.Infow("work order cancelled", "order_id", order.OrderID)
	return nil
}
