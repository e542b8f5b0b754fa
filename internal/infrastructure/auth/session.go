package auth

import (
	"context"
	"fmt"
	"time"

	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/shared/constants"
)

// SessionStore enforces single active sessions. Each user holds exactly
// one canonical token in the cache; presenting any other token means the
// account logged in elsewhere. A replaced token stays usable for a short
// grace window so in-flight requests racing a refresh do not fail.
type SessionStore struct {
	store    cache.Store
	tokenTTL time.Duration
	graceTTL time.Duration
}

func NewSessionStore(store cache.Store, tokenExpireHours, graceTTLSeconds int) *SessionStore {
	return &SessionStore{
		store:    store,
		tokenTTL: time.Duration(tokenExpireHours) * time.Hour,
		graceTTL: time.Duration(graceTTLSeconds) * time.Second,
	}
}

// Establish records token as the user's canonical session, displacing
// any previous one.
func (s *SessionStore) Establish(ctx context.Context, name, dep, token string) error {
	if err := s.store.Set(ctx, constants.SessionKey(name, dep), token, s.tokenTTL); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

// Current returns the canonical token for the user, if any.
func (s *SessionStore) Current(ctx context.Context, name, dep string) (string, bool, error) {
	return s.store.Get(ctx, constants.SessionKey(name, dep))
}

// Clear removes the canonical session, ending it immediately.
func (s *SessionStore) Clear(ctx context.Context, name, dep string) error {
	return s.store.Del(ctx, constants.SessionKey(name, dep))
}

// Replace installs newToken as canonical and parks it under the
// displaced token's grace key, so requests still carrying the old token
// can pick up the same replacement instead of minting another.
func (s *SessionStore) Replace(ctx context.Context, name, dep, oldToken, newToken string) error {
	if err := s.Establish(ctx, name, dep, newToken); err != nil {
		return err
	}
	if err := s.store.Set(ctx, constants.GraceKey(oldToken), newToken, s.graceTTL); err != nil {
		return fmt.Errorf("failed to store grace token: %w", err)
	}
	return nil
}

// Replacement returns the token that displaced the given one, if its
// grace window is still open.
func (s *SessionStore) Replacement(ctx context.Context, token string) (string, bool, error) {
	return s.store.Get(ctx, constants.GraceKey(token))
}
