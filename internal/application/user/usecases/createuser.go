package usecases

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type CreateUserCommand struct {
	Name       string
	WorkNumber string
	Department string
	Phone      string
	Email      string
	WxID       string
	Role       authorization.Permission
	Password   string
}

type CreateUserResult struct {
	UID      uint
	Username string
}

// CreateUserUseCase registers a staff account. The login name is the
// real name plus the work number, which keeps namesakes apart.
type CreateUserUseCase struct {
	profiles user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(profiles user.Repository, hasher PasswordHasher, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{profiles: profiles, hasher: hasher, logger: logger}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	if cmd.WorkNumber == "" {
		return nil, errors.NewValidationError("work number is required")
	}
	if cmd.Password == "" {
		cmd.Password = cmd.WorkNumber
	}

	profile, err := user.NewProfile(cmd.Name+cmd.WorkNumber, cmd.WorkNumber, cmd.Name, cmd.Department, cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	profile.Phone = cmd.Phone
	profile.Email = cmd.Email
	profile.WxID = cmd.WxID

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password")
	}
	profile.PasswordHash = hash

	if err := uc.profiles.Create(ctx, profile); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.NewRepetitionUserError()
		}
		return nil, err
	}

	uc.logger.Infow("user created", "uid", profile.ID, "username", profile.Username)
	return &CreateUserResult{UID: profile.ID, Username: profile.Username}, nil
}
