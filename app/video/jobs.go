package video

import (
	"bitwise74/videogen-api/app/respond"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/model"
	"bitwise74/videogen-api/internal/store"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultJobsLimit = 50

// Jobs lists video jobs of every request, newest first
func Jobs(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	limit, err := parseLimit(c, defaultJobsLimit)
	if err != nil {
		respond.Invalid(c, requestID, http.StatusUnprocessableEntity, err.Error())
		return
	}

	jobs, err := store.FindAll[model.VideoJob](c.Request.Context(), d.Store, model.CollectionVideoJob, store.FindOptions{
		Limit:  limit,
		Newest: true,
	})
	if err != nil {
		respond.StoreError(c, requestID, err, "Failed to list video jobs")
		return
	}

	c.JSON(http.StatusOK, model.ToDTOs(jobs, model.ToVideoJobDTO))
}
