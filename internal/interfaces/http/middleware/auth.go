package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/infrastructure/auth"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/constants"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

// SessionGuard is the single authentication and authorization gate. It
// verifies the token, enforces single-session semantics with a short
// grace window after a refresh, checks the route permission table and
// rotates tokens close to expiry.
type SessionGuard struct {
	jwt      *auth.JWTService
	sessions *auth.SessionStore
	revoked  *auth.RevocationFilter
	logger   logger.Interface
}

func NewSessionGuard(jwt *auth.JWTService, sessions *auth.SessionStore, revoked *auth.RevocationFilter, logger logger.Interface) *SessionGuard {
	return &SessionGuard{jwt: jwt, sessions: sessions, revoked: revoked, logger: logger}
}

func (g *SessionGuard) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authorization.IsPublic(c.Request.URL.Path, c.Request.Method) {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			utils.FailAbort(c, errors.NewInvalidTokenError("missing token"))
			return
		}

		claims, err := g.jwt.Verify(token)
		if err != nil {
			utils.FailAbort(c, errors.NewInvalidTokenError(err.Error()))
			return
		}

		replacement, canonical, err := g.resolveSession(c, claims, token)
		if err != nil {
			utils.FailAbort(c, err)
			return
		}

		if required := authorization.RequiredFor(c.Request.URL.Path); required != 0 {
			if !authorization.Has(claims.Rol, required) {
				utils.FailAbort(c, errors.NewPermissionDeniedError())
				return
			}
		}

		// Rotation must happen before the handler writes the body, or
		// the header would be lost. A displaced token never rotates; it
		// re-announces the replacement the first refresh already minted.
		if replacement != "" {
			c.Header(constants.ReplacementTokenHeader, replacement)
		} else if canonical {
			g.maybeRefresh(c, claims, token)
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Set(constants.ContextKeyUserID, claims.UID)
		c.Set(constants.ContextKeyUserRole, claims.Rol)
		c.Next()
	}
}

// resolveSession enforces one live session per identity. It reports the
// replacement token to hand back when the presented token was displaced
// by a refresh and is still inside its grace window, and whether the
// token holds (or may claim) the canonical slot. An absent canonical
// entry is not a rejection: cache eviction must not log everyone out.
func (g *SessionGuard) resolveSession(c *gin.Context, claims *auth.Claims, token string) (string, bool, error) {
	ctx := c.Request.Context()

	// The filter has no false negatives: a hit might be a collision
	// but a miss is definitely not revoked.
	revoked, err := g.revoked.Contains(ctx, token)
	if err != nil {
		g.logger.Errorw("revocation check failed", "error", err)
		return "", false, errors.NewInternalError("session state unavailable")
	}
	if revoked {
		replacement, found, err := g.sessions.Replacement(ctx, token)
		if err != nil {
			g.logger.Errorw("grace lookup failed", "error", err)
			return "", false, errors.NewInternalError("session state unavailable")
		}
		if found {
			return replacement, false, nil
		}
		return "", false, errors.NewInvalidTokenError("token revoked")
	}

	canonical, ok, err := g.sessions.Current(ctx, claims.Name, claims.Dep)
	if err != nil {
		g.logger.Errorw("session lookup failed", "error", err)
		return "", false, errors.NewInternalError("session state unavailable")
	}
	if !ok || canonical == token {
		return "", true, nil
	}

	replacement, found, err := g.sessions.Replacement(ctx, token)
	if err != nil {
		g.logger.Errorw("grace lookup failed", "error", err)
		return "", false, errors.NewInternalError("session state unavailable")
	}
	if found {
		return replacement, false, nil
	}
	return "", false, errors.NewRepetitionLoginError()
}

func (g *SessionGuard) maybeRefresh(c *gin.Context, claims *auth.Claims, token string) {
	if !g.jwt.ShouldRefresh(claims) {
		return
	}

	fresh, err := g.jwt.Regenerate(claims)
	if err != nil {
		g.logger.Warnw("token regeneration failed", "uid", claims.UID, "error", err)
		return
	}
	if err := g.sessions.Replace(c.Request.Context(), claims.Name, claims.Dep, token, fresh); err != nil {
		g.logger.Warnw("session replacement failed", "uid", claims.UID, "error", err)
		return
	}
	if err := g.revoked.Insert(c.Request.Context(), token); err != nil {
		g.logger.Warnw("failed to revoke displaced token", "uid", claims.UID, "error", err)
	}
	c.Header(constants.ReplacementTokenHeader, fresh)
}

// extractToken takes the bearer header first, then the token query
// parameter used by download links that cannot set headers.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return header
	}
	return c.Query("token")
}
