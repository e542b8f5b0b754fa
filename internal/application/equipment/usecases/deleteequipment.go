package usecases

import (
	"context"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type DeleteEquipmentCommand struct {
	ID     uint
	Editor string
}

// DeleteEquipmentUseCase retires an asset. The row is soft-deleted so
// past work orders keep resolving, and the trail records who did it.
type DeleteEquipmentUseCase struct {
	equipment equipment.Repository
	details   equipment.DetailRepository
	edits     equipment.EditHistoryRepository
	txMgr     TransactionManager
	version   VersionStamper
	logger    logger.Interface
}

func NewDeleteEquipmentUseCase(
	equipmentRepo equipment.Repository,
	details equipment.DetailRepository,
	edits equipment.EditHistoryRepository,
	txMgr TransactionManager,
	version VersionStamper,
	logger logger.Interface,
) *DeleteEquipmentUseCase {
	return &DeleteEquipmentUseCase{
		equipment: equipmentRepo,
		details:   details,
		edits:     edits,
		txMgr:     txMgr,
		version:   version,
		logger:    logger,
	}
}

func (uc *DeleteEquipmentUseCase) Execute(ctx context.Context, cmd DeleteEquipmentCommand) error {
	if cmd.ID == 0 {
		return errors.NewValidationError("equipment is required")
	}

	eq, err := uc.equipment.GetByID(ctx, cmd.ID)
	if err != nil || eq.DelFlag {
		return errors.NewNotFoundError("equipment not found")
	}
	if eq.Status == equipment.StatusUnderRepair {
		return errors.NewConflictStatusError("equipment has an open work order")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.equipment.SoftDelete(txCtx, eq.ID); err != nil {
			return err
		}
		if err := uc.details.SoftDelete(txCtx, eq.ID); err != nil {
			return err
		}
		return uc.edits.Append(txCtx, &equipment.EditEntry{
			EID:     eq.ID,
			Content: "retired",
			Edit:    cmd.Editor,
		})
	})
	if txErr != nil {
		return txErr
	}

	if err := uc.version.Bump(ctx, "equipment"); err != nil {
		uc.logger.Warnw("failed to bump equipment version stamp", "error", err)
	}

	uc.logger.Infow("equipment retired", "eid", eq.ID)
	return nil
}
