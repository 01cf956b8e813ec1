package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "VideoGen AI Backend running",
	})
}
