package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

// roleMaskCeiling is one past the highest assignable bit combination.
const roleMaskCeiling = authorization.PermSupreme<<1 - 1

type UpdateRoleCommand struct {
	TargetUID uint
	Role      authorization.Permission

	// RequesterRole guards escalation: only a supreme administrator may
	// grant the supreme bit.
	RequesterRole authorization.Permission
}

// UpdateRoleUseCase rewrites a profile's permission mask.
type UpdateRoleUseCase struct {
	profiles user.Repository
	logger   logger.Interface
}

func NewUpdateRoleUseCase(profiles user.Repository, logger logger.Interface) *UpdateRoleUseCase {
	return &UpdateRoleUseCase{profiles: profiles, logger: logger}
}

func (uc *UpdateRoleUseCase) Execute(ctx context.Context, cmd UpdateRoleCommand) error {
	if cmd.TargetUID == 0 {
		return errors.NewValidationError("user is required")
	}
	if cmd.Role > roleMaskCeiling {
		return errors.NewValidationError("unknown permission bits in role mask")
	}
	if authorization.Has(cmd.Role, authorization.PermSupreme) &&
		!authorization.Has(cmd.RequesterRole, authorization.PermSupreme) {
		return errors.NewPermissionDeniedError()
	}

	if err := uc.profiles.UpdateRole(ctx, cmd.TargetUID, cmd.Role); err != nil {
		return err
	}

	uc.logger.Infow("role updated", "uid", cmd.TargetUID, "role", cmd.Role)
	return nil
}
