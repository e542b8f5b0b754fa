package handlers

import (
	"github.com/gin-gonic/gin"

	"assetdesk/internal/infrastructure/auth"
	"assetdesk/internal/shared/constants"
)

// claimsFrom returns the verified identity the session guard stored on
// the context, or nil on public routes.
func claimsFrom(c *gin.Context) *auth.Claims {
	value, ok := c.Get(constants.ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
