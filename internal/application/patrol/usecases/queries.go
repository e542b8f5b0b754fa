package usecases

import (
	"context"

	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/shared/errors"
)

type ListPlansQuery struct {
	Status      *int
	InspectorID *uint
	Page        int
	PageSize    int
}

type ListPlansResult struct {
	Plans []*patrol.Plan
	Total int64
}

type ListPlansUseCase struct {
	patrols patrol.Repository
}

func NewListPlansUseCase(patrols patrol.Repository) *ListPlansUseCase {
	return &ListPlansUseCase{patrols: patrols}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*ListPlansResult, error) {
	filter := patrol.Filter{
		PID:      query.InspectorID,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != nil {
		status := patrol.Status(*query.Status)
		if status < patrol.StatusInProgress || status > patrol.StatusCancelled {
			return nil, errors.NewValidationError("unknown patrol status")
		}
		filter.Status = &status
	}

	plans, total, err := uc.patrols.ListPlans(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListPlansResult{Plans: plans, Total: total}, nil
}

type PlanDetailResult struct {
	Plan    *patrol.Plan
	Details []*patrol.Detail
}

// PlanDetailUseCase returns one plan with its checklist, resolved from
// the human readable patrol id.
type PlanDetailUseCase struct {
	patrols patrol.Repository
}

func NewPlanDetailUseCase(patrols patrol.Repository) *PlanDetailUseCase {
	return &PlanDetailUseCase{patrols: patrols}
}

func (uc *PlanDetailUseCase) Execute(ctx context.Context, patrolID string) (*PlanDetailResult, error) {
	if patrolID == "" {
		return nil, errors.NewValidationError("patrol id is required")
	}

	plan, err := uc.patrols.GetPlanByPatrolID(ctx, patrolID)
	if err != nil {
		return nil, errors.NewNotFoundError("patrol plan not found")
	}
	details, err := uc.patrols.ListDetails(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &PlanDetailResult{Plan: plan, Details: details}, nil
}
