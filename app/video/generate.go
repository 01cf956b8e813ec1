package video

import (
	"bitwise74/videogen-api/app/respond"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/model"
	"bitwise74/videogen-api/internal/service"
	"bitwise74/videogen-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Prompt and AspectRatio are pointers so that a missing key is rejected
// while an empty string is accepted
type generateBody struct {
	Prompt            *string     `json:"prompt" binding:"required"`
	Duration          int         `json:"duration" binding:"required,video_duration"`
	Style             model.Style `json:"style" binding:"required,video_style"`
	AspectRatio       *string     `json:"aspect_ratio" binding:"required"`
	Variations        *int        `json:"variations" binding:"omitempty,min=1,max=8"`
	ReferenceImageIDs []string    `json:"reference_image_ids"`
	ImageToVideoIDs   []string    `json:"image_to_video_ids"`
}

func Generate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var body generateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Invalid(c, requestID, http.StatusUnprocessableEntity, validators.Message(err))
		return
	}

	variations := model.MinVariations
	if body.Variations != nil {
		variations = *body.Variations
	}

	res, err := d.Generator.Generate(c.Request.Context(), service.GenerateInput{
		Prompt:            *body.Prompt,
		Duration:          body.Duration,
		Style:             body.Style,
		AspectRatio:       *body.AspectRatio,
		Variations:        variations,
		ReferenceImageIDs: body.ReferenceImageIDs,
		ImageToVideoIDs:   body.ImageToVideoIDs,
	})
	if err != nil {
		var pe *service.PartialFanOutError
		if errors.As(err, &pe) {
			// Already logged with the written job ids by the generator
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Video generation failed partway",
				"request_id": pe.RequestID.Hex(),
				"requestID":  requestID,
			})
			return
		}

		respond.StoreError(c, requestID, err, "Failed to generate videos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": res.RequestID.Hex(),
		"jobs":       model.ToDTOs(res.Jobs, model.ToVideoJobDTO),
	})
}
