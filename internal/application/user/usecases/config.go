package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

// GetConfigUseCase returns the full runtime toggle table.
type GetConfigUseCase struct {
	config user.ConfigRepository
}

func NewGetConfigUseCase(config user.ConfigRepository) *GetConfigUseCase {
	return &GetConfigUseCase{config: config}
}

func (uc *GetConfigUseCase) Execute(ctx context.Context) (map[string]string, error) {
	return uc.config.All(ctx)
}

type UpdateConfigCommand struct {
	Key   string
	Value string
}

// UpdateConfigUseCase writes one runtime toggle and bumps the config
// version stamp so cached views refetch.
type UpdateConfigUseCase struct {
	config  user.ConfigRepository
	version VersionStamper
	logger  logger.Interface
}

func NewUpdateConfigUseCase(config user.ConfigRepository, version VersionStamper, logger logger.Interface) *UpdateConfigUseCase {
	return &UpdateConfigUseCase{config: config, version: version, logger: logger}
}

func (uc *UpdateConfigUseCase) Execute(ctx context.Context, cmd UpdateConfigCommand) error {
	if cmd.Key == "" {
		return errors.NewValidationError("key is required")
	}

	if err := uc.config.Set(ctx, cmd.Key, cmd.Value); err != nil {
		return err
	}
	if err := uc.version.Bump(ctx, "config"); err != nil {
		uc.logger.Warnw("failed to bump config version stamp", "error", err)
	}

	uc.logger.Infow("runtime config updated", "key", cmd.Key, "value", cmd.Value)
	return nil
}
