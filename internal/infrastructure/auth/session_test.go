package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/shared/authorization"
)

func TestSessionStore_EstablishDisplacesPrevious(t *testing.T) {
	sessions := NewSessionStore(cache.NewMemoryStore(), 24, 30)
	ctx := context.Background()

	require.NoError(t, sessions.Establish(ctx, "alice", "IT", "token-1"))
	require.NoError(t, sessions.Establish(ctx, "alice", "IT", "token-2"))

	current, ok, err := sessions.Current(ctx, "alice", "IT")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-2", current)
}

func TestSessionStore_ReplaceParksReplacementUnderOldToken(t *testing.T) {
	sessions := NewSessionStore(cache.NewMemoryStore(), 24, 30)
	ctx := context.Background()

	require.NoError(t, sessions.Establish(ctx, "alice", "IT", "old"))
	require.NoError(t, sessions.Replace(ctx, "alice", "IT", "old", "new"))

	current, ok, err := sessions.Current(ctx, "alice", "IT")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", current)

	replacement, found, err := sessions.Replacement(ctx, "old")
	require.NoError(t, err)
	assert.True(t, found, "displaced token must resolve to its replacement during the grace window")
	assert.Equal(t, "new", replacement)

	_, found, err = sessions.Replacement(ctx, "new")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionStore_GraceExpires(t *testing.T) {
	store := cache.NewMemoryStore()
	sessions := NewSessionStore(store, 24, 30)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	require.NoError(t, sessions.Replace(ctx, "alice", "IT", "old", "new"))

	now = now.Add(31 * time.Second)

	_, found, err := sessions.Replacement(ctx, "old")
	require.NoError(t, err)
	assert.False(t, found, "grace entry must expire after its TTL")
}

func TestSessionStore_Clear(t *testing.T) {
	sessions := NewSessionStore(cache.NewMemoryStore(), 24, 30)
	ctx := context.Background()

	require.NoError(t, sessions.Establish(ctx, "bob", "HR", "token"))
	require.NoError(t, sessions.Clear(ctx, "bob", "HR"))

	_, ok, err := sessions.Current(ctx, "bob", "HR")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJWTService_GenerateVerifyRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 24, 5)

	token, err := svc.Generate(7, "alice", "IT", authorization.PermWrite|authorization.PermMaintenance, "13800000000", "alice@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UID)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "IT", claims.Dep)
	assert.True(t, authorization.Has(claims.Rol, authorization.PermMaintenance))
	assert.Equal(t, "13800000000", claims.Pho)
}

func TestJWTService_VerifyRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 24, 5)
	verifier := NewJWTService("secret-b", 24, 5)

	token, err := issuer.Generate(1, "alice", "IT", 0, "", "")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_Identity(t *testing.T) {
	svc := NewJWTService("test-secret", 24, 5)

	token, err := svc.Generate(3, "bob", "HR", 0, "", "")
	require.NoError(t, err)

	name, dep, err := svc.Identity(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", name)
	assert.Equal(t, "HR", dep)

	_, _, err = svc.Identity("junk")
	assert.Error(t, err)
}

func TestJWTService_ShouldRefresh(t *testing.T) {
	svc := NewJWTService("test-secret", 24, 5)

	issued := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return issued })

	token, err := svc.Generate(1, "alice", "IT", 0, "", "")
	require.NoError(t, err)
	claims, err := svc.Verify(token)
	require.NoError(t, err)

	// Far from expiry: no refresh.
	assert.False(t, svc.ShouldRefresh(claims))

	// Inside the five minute window before the 24h expiry.
	svc.SetClock(func() time.Time { return issued.Add(24*time.Hour - 4*time.Minute) })
	assert.True(t, svc.ShouldRefresh(claims))
}

func TestJWTService_RegeneratePreservesIdentity(t *testing.T) {
	svc := NewJWTService("test-secret", 24, 5)

	token, err := svc.Generate(9, "carol", "Finance", authorization.PermSuper, "555", "carol@example.com")
	require.NoError(t, err)
	claims, err := svc.Verify(token)
	require.NoError(t, err)

	fresh, err := svc.Regenerate(claims)
	require.NoError(t, err)

	freshClaims, err := svc.Verify(fresh)
	require.NoError(t, err)
	assert.Equal(t, claims.UID, freshClaims.UID)
	assert.Equal(t, claims.Rol, freshClaims.Rol)
	assert.Equal(t, claims.Email, freshClaims.Email)
}
