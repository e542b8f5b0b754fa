package usecases

import (
	"context"

	"assetdesk/internal/domain/organization"
	"assetdesk/internal/shared/errors"
)

// TreeUseCase returns the forest of organization trees, one nested node
// per root department.
type TreeUseCase struct {
	departments organization.Repository
}

func NewTreeUseCase(departments organization.Repository) *TreeUseCase {
	return &TreeUseCase{departments: departments}
}

func (uc *TreeUseCase) Execute(ctx context.Context) ([]*organization.Node, error) {
	roots, err := uc.departments.Roots(ctx)
	if err != nil {
		return nil, err
	}

	forest := make([]*organization.Node, 0, len(roots))
	for _, root := range roots {
		node, err := uc.departments.Subtree(ctx, root.ID)
		if err != nil {
			return nil, err
		}
		forest = append(forest, node)
	}
	return forest, nil
}

type ContactResult struct {
	Department *organization.Department
	ProfileID  *uint
}

// GetContactUseCase resolves the contact person for a department.
type GetContactUseCase struct {
	departments organization.Repository
}

func NewGetContactUseCase(departments organization.Repository) *GetContactUseCase {
	return &GetContactUseCase{departments: departments}
}

func (uc *GetContactUseCase) Execute(ctx context.Context, did uint) (*ContactResult, error) {
	dept, err := uc.departments.GetByID(ctx, did)
	if err != nil {
		return nil, errors.NewNotFoundError("department not found")
	}

	result := &ContactResult{Department: dept}
	contact, err := uc.departments.GetContact(ctx, did)
	if err == nil && contact != nil {
		result.ProfileID = contact.PID
	}
	return result, nil
}
