package upload

import (
	"bitwise74/videogen-api/app/respond"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/internal/model"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type uploadFields struct {
	Type model.UploadType `form:"type" binding:"omitempty,upload_type"`
}

// Upload records metadata about a file. The content is read to get its
// size and discarded, nothing is written to disk
func Upload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	form, err := c.MultipartForm()
	if err != nil {
		if bodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     "Request body size exceeds limit",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "Expected a multipart form",
			"requestID": requestID,
		})
		return
	}

	var fields uploadFields
	if err := c.ShouldBindWith(&fields, binding.FormMultipart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid type",
			"requestID": requestID,
		})
		return
	}

	// An empty type counts as not sent
	uploadType := fields.Type
	if uploadType == "" {
		uploadType = model.UploadTypeReference
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}
	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	now := model.Now()
	doc := model.Upload{
		Filename:    fh.Filename,
		URL:         strings.TrimRight(d.UploadURLPrefix, "/") + "/" + fh.Filename,
		Type:        uploadType,
		Size:        int64(len(content)),
		ContentType: contentType(fh.Header.Get("Content-Type"), content),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc.ID, err = d.Store.Insert(c.Request.Context(), model.CollectionUpload, doc)
	if err != nil {
		respond.StoreError(c, requestID, err, "Failed to store upload")
		return
	}

	c.JSON(http.StatusOK, model.ToUploadResponse(doc))
}

// contentType prefers what the client sent, then sniffs the bytes
func contentType(header string, content []byte) string {
	if header != "" {
		return header
	}

	if len(content) > 0 {
		if m := mimetype.Detect(content); m != nil {
			return m.String()
		}
	}

	return model.DefaultContentType
}

func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "http: request body too large")
}
