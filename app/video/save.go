package video

import (
	"bitwise74/videogen-api/app/respond"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/model"
	"bitwise74/videogen-api/internal/store"
	"bitwise74/videogen-api/pkg/validators"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type saveBody struct {
	JobID string `json:"job_id" binding:"required"`
	Saved *bool  `json:"saved" binding:"required"`
}

// Save flips the saved flag of a job. Last write wins
func Save(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var body saveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Invalid(c, requestID, http.StatusUnprocessableEntity, validators.Message(err))
		return
	}

	if store.IsUnavailable(d.Store) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Database not configured",
			"requestID": requestID,
		})
		return
	}

	id, err := store.ParseID(body.JobID)
	if err != nil {
		respond.Invalid(c, requestID, http.StatusBadRequest, "Invalid job id")
		return
	}

	res, err := d.Store.UpdateOne(c.Request.Context(), model.CollectionVideoJob, id, bson.M{
		"saved":      *body.Saved,
		"updated_at": model.Now(),
	})
	if err != nil {
		respond.Invalid(c, requestID, http.StatusBadRequest, "Failed to update job")

		zap.L().Error("Failed to update saved flag", zap.String("requestID", requestID), zap.String("job_id", body.JobID), zap.Error(err))
		return
	}

	if res.Matched == 0 {
		respond.Invalid(c, requestID, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"updated": res.Modified,
	})
}
