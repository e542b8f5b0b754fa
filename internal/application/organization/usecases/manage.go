package usecases

import (
	"context"

	"assetdesk/internal/domain/organization"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type AddDepartmentCommand struct {
	Name     string
	IsGlobal bool
	ParentID *uint
}

// AddDepartmentUseCase grows the organization tree. Names are unique
// across the whole tree because assets reference departments by name.
type AddDepartmentUseCase struct {
	departments organization.Repository
	logger      logger.Interface
}

func NewAddDepartmentUseCase(departments organization.Repository, logger logger.Interface) *AddDepartmentUseCase {
	return &AddDepartmentUseCase{departments: departments, logger: logger}
}

func (uc *AddDepartmentUseCase) Execute(ctx context.Context, cmd AddDepartmentCommand) (*organization.Department, error) {
	if cmd.Name == "" {
		return nil, errors.NewValidationError("name is required")
	}
	if _, err := uc.departments.GetByName(ctx, cmd.Name); err == nil {
		return nil, errors.NewConflictError("department name already in use")
	}
	if cmd.ParentID != nil {
		if _, err := uc.departments.GetByID(ctx, *cmd.ParentID); err != nil {
			return nil, errors.NewNotFoundError("parent department not found")
		}
	}

	dept, err := uc.departments.AddNode(ctx, cmd.Name, cmd.IsGlobal, cmd.ParentID)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("department added", "did", dept.ID, "name", dept.Name)
	return dept, nil
}

type RemoveDepartmentCommand struct {
	ID uint
}

// RemoveDepartmentUseCase deletes a department and its whole subtree.
type RemoveDepartmentUseCase struct {
	departments organization.Repository
	logger      logger.Interface
}

func NewRemoveDepartmentUseCase(departments organization.Repository, logger logger.Interface) *RemoveDepartmentUseCase {
	return &RemoveDepartmentUseCase{departments: departments, logger: logger}
}

func (uc *RemoveDepartmentUseCase) Execute(ctx context.Context, cmd RemoveDepartmentCommand) error {
	if cmd.ID == 0 {
		return errors.NewValidationError("department is required")
	}
	dept, err := uc.departments.GetByID(ctx, cmd.ID)
	if err != nil {
		return errors.NewNotFoundError("department not found")
	}

	if err := uc.departments.RemoveSubtree(ctx, dept.ID); err != nil {
		return err
	}

	uc.logger.Infow("department subtree removed", "did", dept.ID, "name", dept.Name)
	return nil
}

type RenameDepartmentCommand struct {
	ID   uint
	Name string
}

type RenameDepartmentUseCase struct {
	departments organization.Repository
	logger      logger.Interface
}

func NewRenameDepartmentUseCase(departments organization.Repository, logger logger.Interface) *RenameDepartmentUseCase {
	return &RenameDepartmentUseCase{departments: departments, logger: logger}
}

func (uc *RenameDepartmentUseCase) Execute(ctx context.Context, cmd RenameDepartmentCommand) error {
	if cmd.ID == 0 || cmd.Name == "" {
		return errors.NewValidationError("department and name are required")
	}
	if existing, err := uc.departments.GetByName(ctx, cmd.Name); err == nil && existing.ID != cmd.ID {
		return errors.NewConflictError("department name already in use")
	}

	if err := uc.departments.Rename(ctx, cmd.ID, cmd.Name); err != nil {
		return err
	}

	uc.logger.Infow("department renamed", "did", cmd.ID, "name", cmd.Name)
	return nil
}

type SetContactCommand struct {
	DepartmentID uint
	ProfileID    *uint
}

// SetContactUseCase binds or clears the department's contact person.
type SetContactUseCase struct {
	departments organization.Repository
	logger      logger.Interface
}

func NewSetContactUseCase(departments organization.Repository, logger logger.Interface) *SetContactUseCase {
	return &SetContactUseCase{departments: departments, logger: logger}
}

func (uc *SetContactUseCase) Execute(ctx context.Context, cmd SetContactCommand) error {
	if cmd.DepartmentID == 0 {
		return errors.NewValidationError("department is required")
	}
	if _, err := uc.departments.GetByID(ctx, cmd.DepartmentID); err != nil {
		return errors.NewNotFoundError("department not found")
	}

	if err := uc.departments.SetContact(ctx, cmd.DepartmentID, cmd.ProfileID); err != nil {
		return err
	}

	uc.logger.Infow("department contact set", "did", cmd.DepartmentID)
	return nil
}
