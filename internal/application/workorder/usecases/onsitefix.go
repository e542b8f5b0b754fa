package usecases

import (
	"context"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type OnSiteFixCommand struct {
	OrderID string
	Name    string
	Phone   string
	Content string
}

// OnSiteFixUseCase closes the handling phase. The worker proves their
// identity the same way as on arrival, the repair summary is recorded
// and the equipment goes back into service.
type OnSiteFixUseCase struct {
	orders    workorder.Repository
	history   workorder.HistoryRepository
	profiles  user.Repository
	equipment equipment.Repository
	edits     equipment.EditHistoryRepository
	txMgr     TransactionManager
	logger    logger.Interface
}

func NewOnSiteFixUseCase(
	orders workorder.Repository,
	history workorder.HistoryRepository,
	profiles user.Repository,
	equipmentRepo equipment.Repository,
	edits equipment.EditHistoryRepository,
	txMgr TransactionManager,
	logger logger.Interface,
) *OnSiteFixUseCase {
	return &OnSiteFixUseCase{
		orders:    orders,
		history:   history,
		profiles:  profiles,
		equipment: equipmentRepo,
		edits:     edits,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *OnSiteFixUseCase) Execute(ctx context.Context, cmd OnSiteFixCommand) error {
	if cmd.OrderID == "" || cmd.Name == "" || cmd.Phone == "" {
		return errors.NewValidationError("order, name and phone are required")
	}
	if cmd.Content == "" {
		return errors.NewValidationError("content is required")
	}

	order, err := uc.orders.GetByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return errors.NewNotFoundError("work order not found")
	}

	if err := verifyAssignedWorker(ctx, uc.profiles, order, cmd.Name, cmd.Phone); err != nil {
		return err
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		moved, err := uc.orders.TransitionStatus(txCtx, order.ID, workorder.StatusHandling, workorder.StatusEvaluating, map[string]any{
			"content": cmd.Content,
		})
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictStatusError("order already left the handling state")
		}

		restored, err := uc.equipment.UpdateStatusWhen(txCtx, order.EID, equipment.StatusUnderRepair, equipment.StatusInUse)
		if err != nil {
			return err
		}
		if !restored {
			return errors.NewConflictStatusError("equipment state changed during the repair")
		}

		if err := uc.edits.Append(txCtx, &equipment.EditEntry{
			EID:     order.EID,
			Content: "returned to service",
			Edit:    cmd.Name,
		}); err != nil {
			return err
		}

		return uc.history.Append(txCtx, &workorder.HistoryEntry{
			OID:     order.ID,
			Status:  workorder.StatusEvaluating,
			Name:    cmd.Name,
			Phone:   cmd.Phone,
			Content: cmd.Content,
		})
	})
	if txErr != nil {
		return txErr
	}

	uc.logger.Infow("work order fixed on site", "order_id", order.OrderID, "worker", cmd.Name)
	return nil
}
