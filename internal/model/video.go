package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names used in the document store
const (
	CollectionUpload       = "upload"
	CollectionVideoRequest = "videorequest"
	CollectionVideoJob     = "videojob"
)

// VideoRequest is the generation request exactly as it was accepted
type VideoRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Prompt            string             `bson:"prompt"`
	Duration          int                `bson:"duration"`
	Style             Style              `bson:"style"`
	AspectRatio       string             `bson:"aspect_ratio"`
	Variations        int                `bson:"variations"`
	ReferenceImageIDs []string           `bson:"reference_image_ids"`
	ImageToVideoIDs   []string           `bson:"image_to_video_ids"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

// VideoJob is a single variation of a VideoRequest. Saved and UpdatedAt
// are the only fields changed after creation
type VideoJob struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	RequestID         primitive.ObjectID `bson:"request_id,omitempty"`
	Prompt            string             `bson:"prompt"`
	Status            JobStatus          `bson:"status"`
	Duration          int                `bson:"duration"`
	Style             Style              `bson:"style"`
	AspectRatio       string             `bson:"aspect_ratio"`
	ReferenceImageIDs []string           `bson:"reference_image_ids"`
	ImageToVideoIDs   []string           `bson:"image_to_video_ids"`
	VariationIndex    int                `bson:"variation_index"`
	VideoURL          *string            `bson:"video_url"`
	Error             *string            `bson:"error"`
	Saved             bool               `bson:"saved"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}
