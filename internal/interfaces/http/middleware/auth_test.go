package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/infrastructure/auth"
	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/constants"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

type guardFixture struct {
	jwt      *auth.JWTService
	sessions *auth.SessionStore
	store    *cache.MemoryStore
	guard    *SessionGuard
	router   *gin.Engine
	hit      bool
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &guardFixture{
		jwt:   auth.NewJWTService("test-secret", 2, 30),
		store: cache.NewMemoryStore(),
	}
	f.sessions = auth.NewSessionStore(f.store, 2, 30)
	f.guard = NewSessionGuard(f.jwt, f.sessions, auth.NewRevocationFilter(f.store), logger.NewLogger())

	f.router = gin.New()
	f.router.Use(f.guard.Handle())
	f.router.GET("/api/equipment", func(c *gin.Context) {
		f.hit = true
		utils.OKEmpty(c)
	})
	f.router.POST("/api/equipment", func(c *gin.Context) {
		f.hit = true
		utils.OKEmpty(c)
	})
	f.router.POST("/api/user/login", func(c *gin.Context) {
		f.hit = true
		utils.OKEmpty(c)
	})
	return f
}

func (f *guardFixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errcodeOf(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var env utils.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Errcode
}

func TestSessionGuardAllowsPublicRoute(t *testing.T) {
	f := newGuardFixture(t)

	w := f.do(http.MethodPost, "/api/user/login", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, f.hit)
}

func TestSessionGuardRejectsMissingToken(t *testing.T) {
	f := newGuardFixture(t)

	w := f.do(http.MethodGet, "/api/equipment", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errors.CodeInvalidToken, errcodeOf(t, w))
	assert.False(t, f.hit)
}

func TestSessionGuardAcceptsCanonicalSession(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "13800000000", "zs@example.com")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", token))

	w := f.do(http.MethodGet, "/api/equipment", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, f.hit)
}

func TestSessionGuardRejectsDisplacedSession(t *testing.T) {
	f := newGuardFixture(t)
	old, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", old))

	// A later login overwrites the canonical slot.
	fresh, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", fresh))

	w := f.do(http.MethodGet, "/api/equipment", old)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errors.CodeRepetitionLogin, errcodeOf(t, w))
}

func TestSessionGuardHonorsGraceWindowAfterReplace(t *testing.T) {
	f := newGuardFixture(t)
	old, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", old))

	fresh, err := f.jwt.Regenerate(mustClaims(t, f.jwt, old))
	require.NoError(t, err)
	require.NoError(t, f.sessions.Replace(context.Background(), "Zhang San", "it", old, fresh))

	w := f.do(http.MethodGet, "/api/equipment", old)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fresh, w.Header().Get(constants.ReplacementTokenHeader))

	// Past the grace TTL the old token is gone for good.
	f.store.SetClock(func() time.Time { return time.Now().Add(time.Minute) })
	w = f.do(http.MethodGet, "/api/equipment", old)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errors.CodeRepetitionLogin, errcodeOf(t, w))
}

func TestSessionGuardGraceReannouncesSameReplacement(t *testing.T) {
	f := newGuardFixture(t)
	old, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", old))

	fresh, err := f.jwt.Regenerate(mustClaims(t, f.jwt, old))
	require.NoError(t, err)
	require.NoError(t, f.sessions.Replace(context.Background(), "Zhang San", "it", old, fresh))

	// Every in-grace request hands back the replacement the refresh
	// already minted; the canonical slot must not move again.
	for i := 0; i < 3; i++ {
		w := f.do(http.MethodGet, "/api/equipment", old)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fresh, w.Header().Get(constants.ReplacementTokenHeader))
	}

	canonical, ok, err := f.sessions.Current(context.Background(), "Zhang San", "it")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fresh, canonical)
}

func TestSessionGuardAcceptsAdoptedReplacement(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", token))

	// Trip a real rotation through the guard.
	f.jwt.SetClock(func() time.Time { return time.Now().Add(100 * time.Minute) })
	w := f.do(http.MethodGet, "/api/equipment", token)
	require.Equal(t, http.StatusOK, w.Code)
	replacement := w.Header().Get(constants.ReplacementTokenHeader)
	require.NotEmpty(t, replacement)

	// The client that adopted the replacement keeps working, and so
	// does a straggler request still carrying the old token.
	w = f.do(http.MethodGet, "/api/equipment", replacement)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/equipment", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, replacement, w.Header().Get(constants.ReplacementTokenHeader))
}

func TestSessionGuardAllowsValidTokenWithoutCanonicalEntry(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)

	// No Establish call: the canonical entry may have been evicted or
	// the cache flushed. A signed unexpired token still passes.
	w := f.do(http.MethodGet, "/api/equipment", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, f.hit)
}

func TestSessionGuardRejectsRevokedToken(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", token))
	require.NoError(t, auth.NewRevocationFilter(f.store).Insert(context.Background(), token))

	w := f.do(http.MethodGet, "/api/equipment", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errors.CodeInvalidToken, errcodeOf(t, w))
}

func TestSessionGuardEnforcesRoutePermission(t *testing.T) {
	f := newGuardFixture(t)
	// Equipment routes require the write bit.
	token, err := f.jwt.Generate(2, "Li Si", "finance", 0, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Li Si", "finance", token))

	w := f.do(http.MethodPost, "/api/equipment", token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, errors.CodePermissionDenied, errcodeOf(t, w))
	assert.False(t, f.hit)
}

func TestSessionGuardRotatesExpiringToken(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", token))

	// Move the service clock close enough to expiry to trip the refresh
	// window while the token itself still verifies.
	f.jwt.SetClock(func() time.Time { return time.Now().Add(100 * time.Minute) })

	w := f.do(http.MethodGet, "/api/equipment", token)

	require.Equal(t, http.StatusOK, w.Code)
	replacement := w.Header().Get(constants.ReplacementTokenHeader)
	require.NotEmpty(t, replacement)

	canonical, ok, err := f.sessions.Current(context.Background(), "Zhang San", "it")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, replacement, canonical)

	// The displaced token is blacklisted for whatever outlives its
	// grace window.
	revoked, err := auth.NewRevocationFilter(f.store).Contains(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestSessionGuardRejectsGarbageToken(t *testing.T) {
	f := newGuardFixture(t)

	w := f.do(http.MethodGet, "/api/equipment", "not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errors.CodeInvalidToken, errcodeOf(t, w))
	assert.False(t, f.hit)
}

func TestSessionGuardAcceptsQueryToken(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.jwt.Generate(1, "Zhang San", "it", authorization.PermWrite, "", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Establish(context.Background(), "Zhang San", "it", token))

	w := f.do(http.MethodGet, "/api/equipment?token="+token, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func mustClaims(t *testing.T, svc *auth.JWTService, token string) *auth.Claims {
	t.Helper()
	claims, err := svc.Verify(token)
	require.NoError(t, err)
	return claims
}
