package equipment

import "context"

// Filter narrows equipment listings. Department filtering is decided by
// the caller from the requester's role.
type Filter struct {
	Category       *string
	Department     *string
	Status         *Status
	IncludeDeleted bool
	Page           int
	PageSize       int
}

type Repository interface {
	Create(ctx context.Context, eq *Equipment) error
	GetByID(ctx context.Context, id uint) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int64, error)
	Update(ctx context.Context, eq *Equipment) error
	SoftDelete(ctx context.Context, id uint) error
	DistinctValues(ctx context.Context, column string) ([]string, error)

	// UpdateStatusWhen flips the status only while the current status
	// still equals from. Returns false when the guard fails.
	UpdateStatusWhen(ctx context.Context, id uint, from, to Status) (bool, error)

	CountByDepartment(ctx context.Context, departments []string) (map[string]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountByPurchasingAge(ctx context.Context, years int) (older, within int64, err error)
}

type DetailRepository interface {
	Upsert(ctx context.Context, detail *ComputerDetail) error
	GetByEquipment(ctx context.Context, eid uint) (*ComputerDetail, error)
	SoftDelete(ctx context.Context, eid uint) error
}

type EditHistoryRepository interface {
	Append(ctx context.Context, entry *EditEntry) error
	ListByEquipment(ctx context.Context, eid uint) ([]*EditEntry, error)
}
