package usecases

import (
	"context"

	"assetdesk/internal/shared/authorization"
)

// PasswordHasher abstracts the bcrypt wrapper for tests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer mints session tokens for an authenticated profile.
type TokenIssuer interface {
	Generate(uid uint, name, dep string, rol authorization.Permission, pho, email string) (string, error)
}

// SessionManager tracks the canonical token per identity. Establishing
// a session displaces any previous one for the same identity.
type SessionManager interface {
	Establish(ctx context.Context, name, dep, token string) error
	Clear(ctx context.Context, name, dep string) error
}

// TokenRevoker blacklists a token for the rest of its lifetime.
type TokenRevoker interface {
	Insert(ctx context.Context, token string) error
}

// TokenVerifier checks a presented token and reports the identity it
// carries.
type TokenVerifier interface {
	Identity(token string) (name, department string, err error)
}

// WxIdentityResolver exchanges a WeChat Work OAuth code for the member id.
type WxIdentityResolver interface {
	UserIDByCode(ctx context.Context, code string) (string, error)
}

// VersionStamper bumps the cache-busting stamp for a list view after a
// write.
type VersionStamper interface {
	Bump(ctx context.Context, entity string) error
}
