package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToUploadDTOUsesHexID(t *testing.T) {
	id := primitive.NewObjectID()

	dto := ToUploadDTO(Upload{
		ID:          id,
		Filename:    "cat.png",
		URL:         "/uploads/cat.png",
		Type:        UploadTypeReference,
		Size:        42,
		ContentType: "image/png",
	})

	assert.Equal(t, id.Hex(), dto.ID)
	assert.Equal(t, int64(42), dto.Size)
	assert.Nil(t, dto.CreatedAt)

	b, err := json.Marshal(dto)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "id")
	assert.NotContains(t, raw, "_id")
	assert.NotContains(t, raw, "created_at")
}

func TestToUploadResponse(t *testing.T) {
	id := primitive.NewObjectID()

	res := ToUploadResponse(Upload{
		ID:          id,
		Filename:    "cat.png",
		URL:         "/uploads/cat.png",
		Type:        UploadTypeImage2Video,
		Size:        7,
		ContentType: "image/png",
	})

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, map[string]any{
		"id":       id.Hex(),
		"url":      "/uploads/cat.png",
		"filename": "cat.png",
		"size":     float64(7),
		"type":     "image2video",
	}, raw)
}

func TestNowKeepsMilliseconds(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestToVideoJobDTONormalizesLists(t *testing.T) {
	url := "https://example.com/v.mp4"
	now := time.Now().UTC()

	dto := ToVideoJobDTO(VideoJob{
		ID:             primitive.NewObjectID(),
		Prompt:         "a dog running",
		Status:         JobStatusCompleted,
		VariationIndex: 2,
		VideoURL:       &url,
		CreatedAt:      now,
	})

	assert.Equal(t, []string{}, dto.ReferenceImageIDs)
	assert.Equal(t, []string{}, dto.ImageToVideoIDs)
	assert.Empty(t, dto.RequestID)
	require.NotNil(t, dto.CreatedAt)
	assert.True(t, now.Equal(*dto.CreatedAt))

	b, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"error":null`)
	assert.Contains(t, string(b), `"reference_image_ids":[]`)
}

func TestToDTOsKeepsOrder(t *testing.T) {
	reqs := []VideoRequest{
		{ID: primitive.NewObjectID(), Prompt: "one"},
		{ID: primitive.NewObjectID(), Prompt: "two"},
	}

	out := ToDTOs(reqs, ToVideoRequestDTO)

	require.Len(t, out, 2)
	assert.Equal(t, "one", out[0].Prompt)
	assert.Equal(t, "two", out[1].Prompt)
	assert.Equal(t, reqs[1].ID.Hex(), out[1].ID)
}

func TestEnums(t *testing.T) {
	assert.True(t, StyleDigitalArt.Valid())
	assert.False(t, Style("noir").Valid())
	assert.True(t, UploadTypeImage2Video.Valid())
	assert.False(t, UploadType("video").Valid())

	for _, d := range []int{3, 5, 10, 20} {
		assert.True(t, ValidDuration(d))
	}
	assert.False(t, ValidDuration(4))
}
