package usecases

import (
	"context"

	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type CheckOffCommand struct {
	PlanID      uint
	DetailID    uint
	EquipmentID uint

	// InspectorID is the authenticated caller; only the assigned
	// inspector can check items off.
	InspectorID uint
}

type CheckOffResult struct {
	Remaining int
	Completed bool
}

// CheckOffUseCase marks one inspection item done. The equipment id
// comes from the scanned asset tag, so the repository re-verifies the
// detail actually points at that equipment.
type CheckOffUseCase struct {
	patrols patrol.Repository
	logger  logger.Interface
}

func NewCheckOffUseCase(patrols patrol.Repository, logger logger.Interface) *CheckOffUseCase {
	return &CheckOffUseCase{patrols: patrols, logger: logger}
}

func (uc *CheckOffUseCase) Execute(ctx context.Context, cmd CheckOffCommand) (*CheckOffResult, error) {
	if cmd.PlanID == 0 || cmd.DetailID == 0 || cmd.EquipmentID == 0 {
		return nil, errors.NewValidationError("plan, detail and equipment are required")
	}

	plan, err := uc.patrols.GetPlan(ctx, cmd.PlanID)
	if err != nil {
		return nil, errors.NewNotFoundError("patrol plan not found")
	}
	if plan.PID != cmd.InspectorID {
		return nil, errors.NewPermissionDeniedError()
	}
	if plan.Status != patrol.StatusInProgress {
		return nil, errors.NewConflictStatusError("patrol plan is no longer in progress")
	}

	checked, err := uc.patrols.CheckOff(ctx, cmd.DetailID, cmd.PlanID, cmd.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !checked {
		return nil, errors.NewConflictStatusError("item already checked or does not match the plan")
	}

	// Re-read for the authoritative remaining count; the repository
	// recomputed it inside the check-off transaction.
	plan, err = uc.patrols.GetPlan(ctx, cmd.PlanID)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("patrol item checked off",
		"patrol_id", plan.PatrolID, "detail_id", cmd.DetailID, "remaining", plan.Unfinished)
	return &CheckOffResult{
		Remaining: plan.Unfinished,
		Completed: plan.Status == patrol.StatusCompleted,
	}, nil
}
