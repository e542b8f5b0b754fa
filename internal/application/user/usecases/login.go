package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type LoginCommand struct {
	// Account is the username or, as a fallback, the bare work number.
	Account  string
	Password string
}

type LoginResult struct {
	Token      string
	UID        uint
	Name       string
	Department string
	Role       authorization.Permission
}

// LoginUseCase authenticates with account and password. A successful
// login becomes the canonical session for the identity; any earlier
// token is displaced.
type LoginUseCase struct {
	profiles user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	sessions SessionManager
	logger   logger.Interface
}

func NewLoginUseCase(
	profiles user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sessions SessionManager,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		profiles: profiles,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Account == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("account and password are required")
	}

	profile, err := uc.profiles.GetByUsername(ctx, cmd.Account)
	if err != nil {
		profile, err = uc.profiles.GetByWorkNumber(ctx, cmd.Account)
	}
	if err != nil {
		// same answer as a wrong password, no account probing
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.hasher.Verify(cmd.Password, profile.PasswordHash); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	return uc.establish(ctx, profile)
}

func (uc *LoginUseCase) establish(ctx context.Context, profile *user.Profile) (*LoginResult, error) {
	token, err := uc.tokens.Generate(profile.ID, profile.Name, profile.Department, profile.Role, profile.Phone, profile.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue session token")
	}
	if err := uc.sessions.Establish(ctx, profile.Name, profile.Department, token); err != nil {
		return nil, errors.NewInternalError("failed to establish session")
	}

	uc.logger.Infow("user signed in", "uid", profile.ID, "name", profile.Name)
	return &LoginResult{
		Token:      token,
		UID:        profile.ID,
		Name:       profile.Name,
		Department: profile.Department,
		Role:       profile.Role,
	}, nil
}
