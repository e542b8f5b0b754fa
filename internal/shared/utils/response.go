package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/shared/errors"
)

// Envelope is the tri-field response body every endpoint returns. Errcode 0
// means success; errors carry their taxonomy code and a displayable message.
type Envelope struct {
	Errcode int    `json:"errcode"`
	Errmsg  string `json:"errmsg"`
	Data    any    `json:"data,omitempty"`
}

// PageData wraps a paginated table payload.
type PageData struct {
	TotalPage int `json:"totalPage"`
	TableData any `json:"tableData"`
}

// OK sends a success envelope with an optional payload.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Errcode: errors.CodeOK, Errmsg: "ok", Data: data})
}

// OKEmpty sends a success envelope with no payload.
func OKEmpty(c *gin.Context) {
	c.JSON(http.StatusOK, Envelope{Errcode: errors.CodeOK, Errmsg: "ok"})
}

// Fail maps err onto the envelope. Unknown errors collapse to the internal
// code so store error text never reaches the client.
func Fail(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		status := appErr.Code
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, Envelope{Errcode: appErr.Errcode, Errmsg: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Envelope{
		Errcode: errors.CodeInternal,
		Errmsg:  "internal error, please try again later",
	})
}

// FailAbort sends the error envelope and aborts the middleware chain.
func FailAbort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
