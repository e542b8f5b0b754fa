package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assetdesk/internal/domain/user"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
)

func TestChangePassword_Success(t *testing.T) {
	var storedHash string
	profiles := &mockProfileRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.Profile, error) {
			return storedProfile(), nil
		},
		UpdatePasswordHashFunc: func(ctx context.Context, id uint, hash string) error {
			storedHash = hash
			return nil
		},
	}

	uc := NewChangePasswordUseCase(profiles, &mockHasher{}, &mockLogger{})
	err := uc.Execute(context.Background(), ChangePasswordCommand{UID: 1, OldPassword: "secret123", NewPassword: "evenmoresecret"})

	require.NoError(t, err)
	assert.Equal(t, "hashed:evenmoresecret", storedHash)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	profiles := &mockProfileRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.Profile, error) {
			return storedProfile(), nil
		},
	}

	uc := NewChangePasswordUseCase(profiles, &mockHasher{}, &mockLogger{})
	err := uc.Execute(context.Background(), ChangePasswordCommand{UID: 1, OldPassword: "wrong", NewPassword: "evenmoresecret"})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeInvalidOldPassword, appErr.Errcode)
}

func TestChangePassword_RejectsShortPassword(t *testing.T) {
	uc := NewChangePasswordUseCase(&mockProfileRepository{}, &mockHasher{}, &mockLogger{})

	err := uc.Execute(context.Background(), ChangePasswordCommand{UID: 1, OldPassword: "secret123", NewPassword: "short"})

	require.Error(t, err)
}

func TestResetPassword_DefaultsToWorkNumber(t *testing.T) {
	var storedHash string
	profiles := &mockProfileRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.Profile, error) {
			p := storedProfile()
			p.WorkNumber = "100233"
			return p, nil
		},
		UpdatePasswordHashFunc: func(ctx context.Context, id uint, hash string) error {
			storedHash = hash
			return nil
		},
	}

	uc := NewResetPasswordUseCase(profiles, &mockHasher{}, &mockLogger{})
	err := uc.Execute(context.Background(), ResetPasswordCommand{TargetUID: 1})

	require.NoError(t, err)
	assert.Equal(t, "hashed:100233", storedHash)
}

func TestCreateUser_BuildsUsernameFromNameAndWorkNumber(t *testing.T) {
	var created *user.Profile
	profiles := &mockProfileRepository{
		CreateFunc: func(ctx context.Context, profile *user.Profile) error {
			profile.ID = 9
			created = profile
			return nil
		},
	}

	uc := NewCreateUserUseCase(profiles, &mockHasher{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), CreateUserCommand{
		Name:       "Li Si",
		WorkNumber: "1002",
		Department: "it",
		Role:       authorization.PermMaintenance,
	})

	require.NoError(t, err)
	assert.Equal(t, "Li Si1002", result.Username)
	require.NotNil(t, created)
	// no password given: the work number is the initial password
	assert.Equal(t, "hashed:1002", created.PasswordHash)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	profiles := &mockProfileRepository{
		CreateFunc: func(ctx context.Context, profile *user.Profile) error {
			return gorm.ErrDuplicatedKey
		},
	}

	uc := NewCreateUserUseCase(profiles, &mockHasher{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), CreateUserCommand{Name: "Li Si", WorkNumber: "1002"})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeRepetitionUser, appErr.Errcode)
}

func TestUpdateRole_GuardsSupremeBit(t *testing.T) {
	uc := NewUpdateRoleUseCase(&mockProfileRepository{}, &mockLogger{})

	err := uc.Execute(context.Background(), UpdateRoleCommand{
		TargetUID:     2,
		Role:          authorization.PermSupreme,
		RequesterRole: authorization.PermSuper,
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodePermissionDenied, appErr.Errcode)
}

func TestUpdateRole_AcceptsCombinedMask(t *testing.T) {
	var updated authorization.Permission
	profiles := &mockProfileRepository{
		UpdateRoleFunc: func(ctx context.Context, id uint, role authorization.Permission) error {
			updated = role
			return nil
		},
	}

	uc := NewUpdateRoleUseCase(profiles, &mockLogger{})
	err := uc.Execute(context.Background(), UpdateRoleCommand{
		TargetUID:     2,
		Role:          authorization.PermWrite | authorization.PermMaintenance,
		RequesterRole: authorization.PermSuper,
	})

	require.NoError(t, err)
	assert.Equal(t, authorization.PermWrite|authorization.PermMaintenance, updated)
}

func TestListUsers_HidesSupremeAccounts(t *testing.T) {
	profiles := &mockProfileRepository{
		ListFunc: func(ctx context.Context, page, pageSize int) ([]*user.Profile, int64, error) {
			return []*user.Profile{
				{ID: 1, Name: "Zhang San", Role: authorization.PermWrite},
				{ID: 2, Name: "root", Role: authorization.PermSupreme},
				{ID: 3, Name: "Li Si", Role: authorization.PermMaintenance},
			}, 3, nil
		},
	}

	uc := NewListUsersUseCase(profiles)
	result, err := uc.Execute(context.Background(), ListUsersQuery{Page: 1, PageSize: 10})

	require.NoError(t, err)
	require.Len(t, result.Users, 2)
	assert.Equal(t, int64(2), result.Total)
	for _, u := range result.Users {
		assert.False(t, authorization.Has(u.Role, authorization.PermSupreme))
	}
}

func TestUpdateConfig_BumpsVersion(t *testing.T) {
	config := newMockConfigRepository()
	version := &mockVersionStamper{}

	uc := NewUpdateConfigUseCase(config, version, &mockLogger{})
	err := uc.Execute(context.Background(), UpdateConfigCommand{Key: "sendSms", Value: "0"})

	require.NoError(t, err)
	v, _ := config.Get(context.Background(), "sendSms")
	assert.Equal(t, "0", v)
	assert.Equal(t, []string{"config"}, version.bumped)
}
