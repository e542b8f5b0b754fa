package usecases

import (
	"context"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type RemoteFixCommand struct {
	OrderID  uint
	Operator string
	Content  string
}

// RemoteFixUseCase closes a reported order without a site visit. The
// order moves straight to pending evaluation and the equipment returns
// to service.
type RemoteFixUseCase struct {
	orders    workorder.Repository
	history   workorder.HistoryRepository
	equipment equipment.Repository
	edits     equipment.EditHistoryRepository
	txMgr     TransactionManager
	logger    logger.Interface
}

func NewRemoteFixUseCase(
	orders workorder.Repository,
	history workorder.HistoryRepository,
	equipmentRepo equipment.Repository,
	edits equipment.EditHistoryRepository,
	txMgr TransactionManager,
	logger logger.Interface,
) *RemoteFixUseCase {
	return &RemoteFixUseCase{
		orders:    orders,
		history:   history,
		equipment: equipmentRepo,
		edits:     edits,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *RemoteFixUseCase) Execute(ctx context.Context, cmd RemoteFixCommand) error {
	if cmd.OrderID == 0 {
		return errors.NewValidationError("order is required")
	}
	if cmd.Content == "" {
		return errors.NewValidationError("content is required")
	}

	order, err := uc.orders.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return errors.NewNotFoundError("work order not found")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		moved, err := uc.orders.TransitionStatus(txCtx, order.ID, workorder.StatusReported, workorder.StatusEvaluating, map[string]any{
			"content": cmd.Content,
		})
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictStatusError("order already left the reported state")
		}

		restored, err := uc.equipment.UpdateStatusWhen(txCtx, order.EID, equipment.StatusUnderRepair, equipment.StatusInUse)
		if err != nil {
			return err
		}
		if !restored {
			return errors.NewConflictStatusError("equipment state changed during the fix")
		}

		if err := uc.edits.Append(txCtx, &equipment.EditEntry{
			EID:     order.EID,
			Content: "returned to service",
			Edit:    cmd.Operator,
		}); err != nil {
			return err
		}

		return uc.history.Append(txCtx, &workorder.HistoryEntry{
			OID:     order.ID,
			Status:  workorder.StatusEvaluating,
			Name:    cmd.Operator,
			Content: cmd.Content,
		})
	})
	if txErr != nil {
		return txErr
	}

	uc.logger.Infow("work order fixed remotely", "order_id", order.OrderID)
	return nil
}
