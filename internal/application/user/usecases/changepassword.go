package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UID         uint
	OldPassword string
	NewPassword string
}

// ChangePasswordUseCase lets a signed-in user rotate their own password
// after proving the current one.
type ChangePasswordUseCase struct {
	profiles user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewChangePasswordUseCase(profiles user.Repository, hasher PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{profiles: profiles, hasher: hasher, logger: logger}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if cmd.UID == 0 {
		return errors.NewValidationError("user is required")
	}
	if cmd.NewPassword == "" {
		return errors.NewValidationError("new password is required")
	}
	if len(cmd.NewPassword) < 8 {
		return errors.NewValidationError("new password must be at least 8 characters long")
	}
	if cmd.NewPassword == cmd.OldPassword {
		return errors.NewValidationError("new password must differ from the old one")
	}

	profile, err := uc.profiles.GetByID(ctx, cmd.UID)
	if err != nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := uc.hasher.Verify(cmd.OldPassword, profile.PasswordHash); err != nil {
		return errors.NewInvalidOldPasswordError()
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return errors.NewInternalError("failed to hash password")
	}
	if err := uc.profiles.UpdatePasswordHash(ctx, profile.ID, hash); err != nil {
		return err
	}

	uc.logger.Infow("password changed", "uid", profile.ID)
	return nil
}
