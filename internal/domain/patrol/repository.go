package patrol

import "context"

type Filter struct {
	Status   *Status
	PID      *uint
	Page     int
	PageSize int
}

type Repository interface {
	// CreatePlan writes the meta row and all detail rows atomically.
	CreatePlan(ctx context.Context, plan *Plan, details []*Detail) error
	GetPlan(ctx context.Context, id uint) (*Plan, error)
	GetPlanByPatrolID(ctx context.Context, patrolID string) (*Plan, error)
	ListPlans(ctx context.Context, filter Filter) ([]*Plan, int64, error)
	ListDetails(ctx context.Context, planID uint) ([]*Detail, error)
	CountByPatrolIDPrefix(ctx context.Context, prefix string) (int64, error)

	// CheckOff marks one detail done and recomputes the plan's
	// unfinished count in the same transaction, flipping the plan to
	// completed when it reaches zero. Returns false when the detail was
	// already checked or does not belong to the plan and equipment.
	CheckOff(ctx context.Context, detailID, planID, eid uint) (bool, error)

	// CancelPlan moves an in-progress plan to cancelled. Returns false
	// when the plan already left the in-progress state.
	CancelPlan(ctx context.Context, planID uint) (bool, error)

	// CancelOverdue cancels every in-progress plan whose end time is
	// before now, returning how many were swept.
	CancelOverdue(ctx context.Context, now string) (int64, error)
}
