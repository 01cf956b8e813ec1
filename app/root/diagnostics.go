package root

import (
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Diagnostics always answers 200, database problems only show up in the
// report's status
func Diagnostics(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, service.Diagnose(c.Request.Context(), d.Store, d.DatabaseURLSet))
}
