package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type UpdateEquipmentCommand struct {
	ID             uint
	Category       *string
	Brand          *string
	ModelNumber    *string
	SerialNumber   *string
	Price          *int
	PurchasingTime *time.Time
	Guarantee      *int
	Remark         *string
	Status         *int
	User           *string
	Owner          *string
	Department     *string

	Detail *ComputerDetailInput

	Editor string
}

// UpdateEquipmentUseCase applies a partial update and writes one edit
// trail entry per changed field, so the trail reads as a field diff.
type UpdateEquipmentUseCase struct {
	equipment equipment.Repository
	details   equipment.DetailRepository
	edits     equipment.EditHistoryRepository
	txMgr     TransactionManager
	version   VersionStamper
	logger    logger.Interface
}

func NewUpdateEquipmentUseCase(
	equipmentRepo equipment.Repository,
	details equipment.DetailRepository,
	edits equipment.EditHistoryRepository,
	txMgr TransactionManager,
	version VersionStamper,
	logger logger.Interface,
) *UpdateEquipmentUseCase {
	return &UpdateEquipmentUseCase{
		equipment: equipmentRepo,
		details:   details,
		edits:     edits,
		txMgr:     txMgr,
		version:   version,
		logger:    logger,
	}
}

func (uc *UpdateEquipmentUseCase) Execute(ctx context.Context, cmd UpdateEquipmentCommand) error {
	if cmd.ID == 0 {
		return errors.NewValidationError("equipment is required")
	}
	if cmd.Editor == "" {
		return errors.NewValidationError("editor is required")
	}

	eq, err := uc.equipment.GetByID(ctx, cmd.ID)
	if err != nil || eq.DelFlag {
		return errors.NewNotFoundError("equipment not found")
	}

	changes := uc.apply(eq, &cmd)
	if len(changes) == 0 && cmd.Detail == nil {
		return errors.NewValidationError("nothing to update")
	}
	eq.Edit = cmd.Editor

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.equipment.Update(txCtx, eq); err != nil {
			return err
		}
		if cmd.Detail != nil {
			if err := uc.details.Upsert(txCtx, detailFromInput(eq.ID, cmd.Detail)); err != nil {
				return err
			}
			changes = append(changes, "hardware detail replaced")
		}
		return uc.edits.Append(txCtx, &equipment.EditEntry{
			EID:     eq.ID,
			Content: strings.Join(changes, "; "),
			Edit:    cmd.Editor,
		})
	})
	if txErr != nil {
		return txErr
	}

	if err := uc.version.Bump(ctx, "equipment"); err != nil {
		uc.logger.Warnw("failed to bump equipment version stamp", "error", err)
	}

	uc.logger.Infow("equipment updated", "eid", eq.ID, "changes", len(changes))
	return nil
}

func (uc *UpdateEquipmentUseCase) apply(eq *equipment.Equipment, cmd *UpdateEquipmentCommand) []string {
	var changes []string
	setStr := func(field string, target *string, value *string) {
		if value != nil && *value != *target {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", field, *target, *value))
			*target = *value
		}
	}
	setInt := func(field string, target *int, value *int) {
		if value != nil && *value != *target {
			changes = append(changes, fmt.Sprintf("%s: %d -> %d", field, *target, *value))
			*target = *value
		}
	}

	setStr("category", &eq.Category, cmd.Category)
	setStr("brand", &eq.Brand, cmd.Brand)
	setStr("model", &eq.ModelNumber, cmd.ModelNumber)
	setStr("serial", &eq.SerialNumber, cmd.SerialNumber)
	setInt("price", &eq.Price, cmd.Price)
	setInt("guarantee", &eq.Guarantee, cmd.Guarantee)
	setStr("remark", &eq.Remark, cmd.Remark)
	setStr("user", &eq.User, cmd.User)
	setStr("owner", &eq.Owner, cmd.Owner)
	setStr("department", &eq.Department, cmd.Department)

	if cmd.PurchasingTime != nil {
		changes = append(changes, "purchasing time updated")
		eq.PurchasingTime = cmd.PurchasingTime
	}
	if cmd.Status != nil {
		status := equipment.Status(*cmd.Status)
		if status.IsValid() && status != eq.Status {
			changes = append(changes, fmt.Sprintf("status: %s -> %s", eq.Status, status))
			eq.Status = status
		}
	}
	return changes
}
