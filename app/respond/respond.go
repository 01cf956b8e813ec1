// Package respond holds the error responses shared by the handlers
package respond

import (
	"bitwise74/videogen-api/internal/store"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StoreError answers 500 for a failed store call. Unexpected errors are
// logged with msg, a missing database isn't since that's logged at startup
func StoreError(c *gin.Context, requestID string, err error, msg string) {
	if errors.Is(err, store.ErrUnavailable) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Database not available",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(msg, zap.String("requestID", requestID), zap.Error(err))
}

func Invalid(c *gin.Context, requestID string, code int, msg string) {
	c.JSON(code, gin.H{
		"error":     msg,
		"requestID": requestID,
	})
}
