package usecases

import (
	"context"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type WeChatLoginCommand struct {
	Code string
}

// WeChatLoginUseCase signs a corporate member in from the WeChat Work
// OAuth redirect. The member id must already be bound to a profile;
// there is no self-registration.
type WeChatLoginUseCase struct {
	profiles user.Repository
	wechat   WxIdentityResolver
	login    *LoginUseCase
	logger   logger.Interface
}

func NewWeChatLoginUseCase(
	profiles user.Repository,
	wechat WxIdentityResolver,
	login *LoginUseCase,
	logger logger.Interface,
) *WeChatLoginUseCase {
	return &WeChatLoginUseCase{
		profiles: profiles,
		wechat:   wechat,
		login:    login,
		logger:   logger,
	}
}

func (uc *WeChatLoginUseCase) Execute(ctx context.Context, cmd WeChatLoginCommand) (*LoginResult, error) {
	if cmd.Code == "" {
		return nil, errors.NewValidationError("code is required")
	}

	wxID, err := uc.wechat.UserIDByCode(ctx, cmd.Code)
	if err != nil {
		return nil, errors.NewUnauthorizedError("wechat identity could not be resolved")
	}

	profile, err := uc.profiles.GetByWxID(ctx, wxID)
	if err != nil {
		uc.logger.Warnw("wechat member has no bound profile", "wx_id", wxID)
		return nil, errors.NewInvalidCredentialsError()
	}

	return uc.login.establish(ctx, profile)
}
