package usecases

import (
	"context"

	"assetdesk/internal/shared/logger"
)

type LogoutCommand struct {
	Token string
}

// LogoutUseCase revokes the presented token and drops the canonical
// session it belongs to. The identity comes from the token's own
// claims; only tokens this service minted enter the revocation filter.
type LogoutUseCase struct {
	tokens   TokenVerifier
	revoker  TokenRevoker
	sessions SessionManager
	logger   logger.Interface
}

func NewLogoutUseCase(tokens TokenVerifier, revoker TokenRevoker, sessions SessionManager, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{tokens: tokens, revoker: revoker, sessions: sessions, logger: logger}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.Token == "" {
		return nil
	}

	name, dep, err := uc.tokens.Identity(cmd.Token)
	if err != nil {
		// An unverifiable token holds no session to end.
		uc.logger.Infow("logout with unverifiable token", "error", err)
		return nil
	}

	if err := uc.revoker.Insert(ctx, cmd.Token); err != nil {
		return err
	}
	if err := uc.sessions.Clear(ctx, name, dep); err != nil {
		uc.logger.Warnw("failed to clear canonical session", "name", name, "error", err)
	}

	uc.logger.Infow("user signed out", "name", name)
	return nil
}
