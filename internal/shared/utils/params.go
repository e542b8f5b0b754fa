package utils

import (
	"github.com/gin-gonic/gin"

	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/id"
)

// ParseOpaqueQuery decodes an opaque entity id from a query parameter.
// entityName is used in the error message only.
func ParseOpaqueQuery(c *gin.Context, codec *id.Codec, key, entityName string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " id is required")
	}
	decoded, err := codec.Decode(raw)
	if err != nil {
		return 0, errors.NewValidationError("invalid "+entityName+" id", err.Error())
	}
	return decoded, nil
}
