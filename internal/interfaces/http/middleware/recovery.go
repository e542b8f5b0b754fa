package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

// Recovery converts panics into the standard error envelope instead of
// letting gin print its own page.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				utils.FailAbort(c, errors.NewInternalError("internal server error"))
			}
		}()
		c.Next()
	}
}
