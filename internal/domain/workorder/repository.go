package workorder

import "context"

// Filter narrows work order listings. Nil fields are ignored.
type Filter struct {
	Department    *string
	Equipment     *string
	Status        *Status
	PID           *uint
	IncludeDeleted bool
	Page          int
	PageSize      int
}

// Repository persists work orders. TransitionStatus is the only write
// path for status changes; it performs a conditional update and reports
// whether the expected source state still held.
type Repository interface {
	Create(ctx context.Context, order *WorkOrder) error
	GetByID(ctx context.Context, id uint) (*WorkOrder, error)
	GetByOrderID(ctx context.Context, orderID string) (*WorkOrder, error)
	List(ctx context.Context, filter Filter) ([]*WorkOrder, int64, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)
	CountByOrderIDPrefix(ctx context.Context, prefix string) (int64, error)

	// TransitionStatus updates the order only when its status still
	// equals from. It returns false without error when another writer
	// changed the row first. Updates beyond the status column are taken
	// from set.
	TransitionStatus(ctx context.Context, id uint, from, to Status, set map[string]any) (bool, error)
}

// HistoryRepository is the append-only trail store.
type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	ListByOrder(ctx context.Context, oid uint) ([]*HistoryEntry, error)
	// LatestByStatus returns the most recent entry with the given
	// status for an order, used to recover report content for emails.
	LatestByStatus(ctx context.Context, oid uint, status Status) (*HistoryEntry, error)
}
