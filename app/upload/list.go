package upload

import (
	"bitwise74/videogen-api/app/respond"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/model"
	"bitwise74/videogen-api/internal/store"
	"net/http"

	"github.com/gin-gonic/gin"
)

// List returns every upload in the order the store keeps them
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	uploads, err := store.FindAll[model.Upload](c.Request.Context(), d.Store, model.CollectionUpload, store.FindOptions{})
	if err != nil {
		respond.StoreError(c, requestID, err, "Failed to list uploads")
		return
	}

	c.JSON(http.StatusOK, model.ToDTOs(uploads, model.ToUploadDTO))
}
