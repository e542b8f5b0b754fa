package usecases

import (
	"context"

	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type CancelPlanCommand struct {
	PlanID uint
}

// CancelPlanUseCase aborts an in-progress patrol round.
type CancelPlanUseCase struct {
	patrols patrol.Repository
	logger  logger.Interface
}

func NewCancelPlanUseCase(patrols patrol.Repository, logger logger.Interface) *CancelPlanUseCase {
	return &CancelPlanUseCase{patrols: patrols, logger: logger}
}

func (uc *CancelPlanUseCase) Execute(ctx context.Context, cmd CancelPlanCommand) error {
	if cmd.PlanID == 0 {
		return errors.NewValidationError("plan is required")
	}

	plan, err := uc.patrols.GetPlan(ctx, cmd.PlanID)
	if err != nil {
		return errors.NewNotFoundError("patrol plan not found")
	}

	cancelled, err := uc.patrols.CancelPlan(ctx, plan.ID)
	if err != nil {
		return err
	}
	if !cancelled {
		return errors.NewConflictStatusError("patrol plan already left the in-progress state")
	}

	uc.logger.Infow("patrol plan cancelled", "patrol_id", plan.PatrolID)
	return nil
}
