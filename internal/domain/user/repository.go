package user

import (
	"context"

	"assetdesk/internal/shared/authorization"
)

type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id uint) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	GetByWorkNumber(ctx context.Context, workNumber string) (*Profile, error)
	GetByWxID(ctx context.Context, wxID string) (*Profile, error)
	List(ctx context.Context, page, pageSize int) ([]*Profile, int64, error)
	ListMaintenanceWorkers(ctx context.Context) ([]*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	UpdateRole(ctx context.Context, id uint, role authorization.Permission) error
}

// ConfigRepository stores runtime toggles such as sendSms and sendEmail.
type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
