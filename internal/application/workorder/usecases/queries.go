package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type ListOrdersQuery struct {
	Department *string
	Equipment  *string
	Status     *string
	Page       int
	PageSize   int

	// RequesterRole and RequesterDep scope the listing: only a super
	// administrator asking for everything sees soft-deleted rows.
	RequesterRole authorization.Permission
	RequesterDep  string
	IncludeAll    bool
}

type ListOrdersResult struct {
	Orders []*workorder.WorkOrder
	Total  int64
}

type ListOrdersUseCase struct {
	orders workorder.Repository
	logger logger.Interface
}

func NewListOrdersUseCase(orders workorder.Repository, logger logger.Interface) *ListOrdersUseCase {
	return &ListOrdersUseCase{orders: orders, logger: logger}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, query ListOrdersQuery) (*ListOrdersResult, error) {
	filter := workorder.Filter{
		Department: query.Department,
		Equipment:  query.Equipment,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	if query.Status != nil {
		status := workorder.Status(*query.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("unknown order status")
		}
		filter.Status = &status
	}

	// Without the department-wide bit the requester only sees their own
	// department's orders.
	if !authorization.Has(query.RequesterRole, authorization.PermHigher) &&
		!authorization.Has(query.RequesterRole, authorization.PermSuper) {
		filter.Department = &query.RequesterDep
	}
	if query.IncludeAll && authorization.Has(query.RequesterRole, authorization.PermSuper) {
		filter.IncludeDeleted = true
	}

	orders, total, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListOrdersResult{Orders: orders, Total: total}, nil
}

// OrderOptionsUseCase feeds the filter dropdowns with the distinct
// values present in the table.
type OrderOptionsUseCase struct {
	orders workorder.Repository
}

func NewOrderOptionsUseCase(orders workorder.Repository) *OrderOptionsUseCase {
	return &OrderOptionsUseCase{orders: orders}
}

func (uc *OrderOptionsUseCase) Execute(ctx context.Context) (map[string][]string, error) {
	options := make(map[string][]string, 3)
	for _, column := range []string{"department", "equipment", "reason"} {
		values, err := uc.orders.DistinctValues(ctx, column)
		if err != nil {
			return nil, err
		}
		options[column] = values
	}
	return options, nil
}

// OrderFlowUseCase returns the append-only trail for one order.
type OrderFlowUseCase struct {
	orders  workorder.Repository
	history workorder.HistoryRepository
}

func NewOrderFlowUseCase(orders workorder.Repository, history workorder.HistoryRepository) *OrderFlowUseCase {
	return &OrderFlowUseCase{orders: orders, history: history}
}

func (uc *OrderFlowUseCase) Execute(ctx context.Context, orderID string) ([]*workorder.HistoryEntry, error) {
	order, err := uc.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.NewNotFoundError("work order not found")
	}
	return uc.history.ListByOrder(ctx, order.ID)
}

// ListWorkersUseCase lists the profiles that can be dispatched.
type ListWorkersUseCase struct {
	profiles user.Repository
}

func NewListWorkersUseCase(profiles user.Repository) *ListWorkersUseCase {
	return &ListWorkersUseCase{profiles: profiles}
}

func (uc *ListWorkersUseCase) Execute(ctx context.Context) ([]*user.Profile, error) {
	return uc.profiles.ListMaintenanceWorkers(ctx)
}
