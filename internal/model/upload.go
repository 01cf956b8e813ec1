// Package model defines the documents kept in the store and the
// shapes they take when returned over the API
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultContentType = "application/octet-stream"

// Now is the timestamp written into documents. BSON dates keep
// milliseconds, so anything finer would not survive a read back
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Upload only describes a file. The bytes themselves are never kept and
// URL is built from the original name, so two uploads can share it
type Upload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Filename    string             `bson:"filename"`
	URL         string             `bson:"url"`
	Type        UploadType         `bson:"type"`
	Size        int64              `bson:"size"`
	ContentType string             `bson:"content_type"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}
