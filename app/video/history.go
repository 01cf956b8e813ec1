package video

import (
	"bitwise74/videogen-api/app/respond"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/model"
	"bitwise74/videogen-api/internal/store"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 25

// History lists generation requests, newest first
func History(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	limit, err := parseLimit(c, defaultHistoryLimit)
	if err != nil {
		respond.Invalid(c, requestID, http.StatusUnprocessableEntity, err.Error())
		return
	}

	reqs, err := store.FindAll[model.VideoRequest](c.Request.Context(), d.Store, model.CollectionVideoRequest, store.FindOptions{
		Limit:  limit,
		Newest: true,
	})
	if err != nil {
		respond.StoreError(c, requestID, err, "Failed to list video requests")
		return
	}

	c.JSON(http.StatusOK, model.ToDTOs(reqs, model.ToVideoRequestDTO))
}
