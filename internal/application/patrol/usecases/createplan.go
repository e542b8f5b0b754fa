package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/constants"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

// createRetries caps how often a lost patrol id race is retried.
const createRetries = 3

type CreatePlanCommand struct {
	InspectorID  uint
	EquipmentIDs []uint
	StartTime    string
	EndTime      string
}

type CreatePlanResult struct {
	PatrolID string
	PlanID   uint
}

// CreatePlanUseCase schedules an inspection round. The plan id carries
// a monthly prefix so inspectors see at a glance which round a plan
// belongs to.
type CreatePlanUseCase struct {
	patrols  patrol.Repository
	profiles user.Repository
	sequence *workorder.SequenceGenerator
	logger   logger.Interface
	now      func() time.Time
}

func NewCreatePlanUseCase(
	patrols patrol.Repository,
	profiles user.Repository,
	sequence *workorder.SequenceGenerator,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		patrols:  patrols,
		profiles: profiles,
		sequence: sequence,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*CreatePlanResult, error) {
	if cmd.InspectorID == 0 {
		return nil, errors.NewValidationError("inspector is required")
	}
	if len(cmd.EquipmentIDs) == 0 {
		return nil, errors.NewValidationError("at least one equipment is required")
	}
	if cmd.StartTime == "" || cmd.EndTime == "" {
		return nil, errors.NewValidationError("start and end time are required")
	}
	if cmd.EndTime < cmd.StartTime {
		return nil, errors.NewValidationError("end time is before start time")
	}

	inspector, err := uc.profiles.GetByID(ctx, cmd.InspectorID)
	if err != nil {
		return nil, errors.NewNotFoundError("inspector not found")
	}
	if !inspector.IsMaintenance() {
		return nil, errors.NewValidationError("profile is not a maintenance worker")
	}

	prefix := workorder.PatrolPrefix(uc.now())
	seqKey := constants.PatrolSeqKey(prefix)

	var created *patrol.Plan
	var seq int
	for attempt := 0; attempt < createRetries; attempt++ {
		var patrolID string
		patrolID, seq, err = uc.sequence.Next(ctx, seqKey, prefix, uc.patrols.CountByPatrolIDPrefix)
		if err != nil {
			return nil, err
		}

		plan, details, buildErr := patrol.NewPlan(patrolID, inspector.ID, cmd.EquipmentIDs, cmd.StartTime, cmd.EndTime)
		if buildErr != nil {
			return nil, errors.NewValidationError(buildErr.Error())
		}

		err = uc.patrols.CreatePlan(ctx, plan, details)
		if err == nil {
			created = plan
			break
		}
		if !stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		uc.logger.Warnw("patrol id lost the insert race, retrying", "patrol_id", patrolID, "attempt", attempt+1)
	}
	if created == nil {
		return nil, errors.NewRepetitionOrderIDError()
	}

	if err := uc.sequence.Commit(ctx, seqKey, seq, 31*24*time.Hour); err != nil {
		uc.logger.Warnw("failed to store patrol sequence counter", "error", err)
	}

	uc.logger.Infow("patrol plan created", "patrol_id", created.PatrolID, "inspector", inspector.Name, "items", created.Total)
	return &CreatePlanResult{PatrolID: created.PatrolID, PlanID: created.ID}, nil
}
