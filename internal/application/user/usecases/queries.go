package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
)

type ListUsersQuery struct {
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users []*user.Profile
	Total int64
}

// ListUsersUseCase pages through staff accounts. Supreme administrators
// are filtered out of the listing.
type ListUsersUseCase struct {
	profiles user.Repository
}

func NewListUsersUseCase(profiles user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{profiles: profiles}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	users, total, err := uc.profiles.List(ctx, query.Page, query.PageSize)
	if err != nil {
		return nil, err
	}

	visible := make([]*user.Profile, 0, len(users))
	for _, u := range users {
		if authorization.Has(u.Role, authorization.PermSupreme) {
			total--
			continue
		}
		visible = append(visible, u)
	}
	return &ListUsersResult{Users: visible, Total: total}, nil
}

// GetUserUseCase returns one profile by id.
type GetUserUseCase struct {
	profiles user.Repository
}

func NewGetUserUseCase(profiles user.Repository) *GetUserUseCase {
	return &GetUserUseCase{profiles: profiles}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, uid uint) (*user.Profile, error) {
	profile, err := uc.profiles.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return profile, nil
}
