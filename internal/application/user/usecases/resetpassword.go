package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type ResetPasswordCommand struct {
	TargetUID uint
	// NewPassword is optional; when empty the password resets to the
	// target's work number so the helpdesk can hand it over verbally.
	NewPassword string
}

// ResetPasswordUseCase is the administrator's recovery path. The route
// guard restricts it to super administrators.
type ResetPasswordUseCase struct {
	profiles user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewResetPasswordUseCase(profiles user.Repository, hasher PasswordHasher, logger logger.Interface) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{profiles: profiles, hasher: hasher, logger: logger}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	if cmd.TargetUID == 0 {
		return errors.NewValidationError("user is required")
	}

	profile, err := uc.profiles.GetByID(ctx, cmd.TargetUID)
	if err != nil {
		return errors.NewNotFoundError("user not found")
	}

	password := cmd.NewPassword
	if password == "" {
		password = profile.WorkNumber
	}
	if len(password) < 6 {
		return errors.NewValidationError("replacement password is too short")
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return errors.NewInternalError("failed to hash password")
	}
	if err := uc.profiles.UpdatePasswordHash(ctx, profile.ID, hash); err != nil {
		return err
	}

	uc.logger.Infow("password reset by administrator", "uid", profile.ID)
	return nil
}
