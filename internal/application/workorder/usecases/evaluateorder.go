package usecases

import (
	"context"
	"fmt"

	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type EvaluateOrderCommand struct {
	OrderID string
	Captcha string
	Rank    int
	Remark  string
	Name    string
}

// EvaluateOrderUseCase lets the reporter score the finished repair. The
// captcha from the notification stands in for authentication.
type EvaluateOrderUseCase struct {
	orders  workorder.Repository
	history workorder.HistoryRepository
	captcha CaptchaVerifier
	txMgr   TransactionManager
	logger  logger.Interface
}

func NewEvaluateOrderUseCase(
	orders workorder.Repository,
	history workorder.HistoryRepository,
	captcha CaptchaVerifier,
	txMgr TransactionManager,
	logger logger.Interface,
) *EvaluateOrderUseCase {
	return &EvaluateOrderUseCase{
		orders:  orders,
		history: history,
		captcha: captcha,
		txMgr:   txMgr,
		logger:  logger,
	}
}

func (uc *EvaluateOrderUseCase) Execute(ctx context.Context, cmd EvaluateOrderCommand) error {
	if cmd.OrderID == "" {
		return errors.NewValidationError("order is required")
	}
	if !workorder.ValidRank(cmd.Rank) {
		return errors.NewValidationError("rank must be between 0 and 5")
	}

	if err := uc.captcha.Verify(ctx, cmd.OrderID, cmd.Captcha); err != nil {
		return err
	}

	order, err := uc.orders.GetByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return errors.NewNotFoundError("work order not found")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		moved, err := uc.orders.TransitionStatus(txCtx, order.ID, workorder.StatusEvaluating, workorder.StatusFinished, map[string]any{
			"rank": cmd.Rank,
		})
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictStatusError("order is not waiting for evaluation")
		}

		return uc.history.Append(txCtx, &workorder.HistoryEntry{
			OID:     order.ID,
			Status:  workorder.StatusFinished,
			Name:    cmd.Name,
			Remark:  cmd.Remark,
			Content: fmt.Sprintf("evaluated with rank %d", cmd.Rank),
		})
	})
	if txErr != nil {
		return txErr
	}

	uc.logger.Infow("work order evaluated", "order_id", order.OrderID, "rank", cmd.Rank)
	return nil
}
