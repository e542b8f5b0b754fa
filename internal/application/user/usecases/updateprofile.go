package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type UpdateProfileCommand struct {
	UID        uint
	Phone      *string
	Email      *string
	Department *string
	WxID       *string
}

// UpdateProfileUseCase updates the mutable contact fields of a profile.
// Nil fields stay untouched.
type UpdateProfileUseCase struct {
	profiles user.Repository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(profiles user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profiles: profiles, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) error {
	if cmd.UID == 0 {
		return errors.NewValidationError("user is required")
	}

	profile, err := uc.profiles.GetByID(ctx, cmd.UID)
	if err != nil {
		return errors.NewNotFoundError("user not found")
	}

	if cmd.Phone != nil {
		profile.Phone = *cmd.Phone
	}
	if cmd.Email != nil {
		profile.Email = *cmd.Email
	}
	if cmd.Department != nil {
		profile.Department = *cmd.Department
	}
	if cmd.WxID != nil {
		profile.WxID = *cmd.WxID
	}

	if err := uc.profiles.Update(ctx, profile); err != nil {
		return err
	}

	uc.logger.Infow("profile updated", "uid", profile.ID)
	return nil
}
