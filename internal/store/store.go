// Package store contains the document store the API persists into.
// Every backend hands out ObjectID identifiers so ids look the same
// no matter where the documents actually live
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUnavailable = errors.New("database not available")
	ErrInvalidID   = errors.New("invalid document id")

	// ErrNotConfigured is the Unavailable reason when no database URL is set
	ErrNotConfigured = errors.New("database not configured")
)

type FindOptions struct {
	// Limit <= 0 returns every document
	Limit int64
	// Newest orders by created_at descending. Documents without it keep
	// the store's natural order relative to each other
	Newest bool
}

type UpdateResult struct {
	Matched  int64
	Modified int64
}

type Store interface {
	// Name identifies the database, it's shown on the diagnostics page
	Name() string
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	Find(ctx context.Context, collection string, opts FindOptions) ([]bson.Raw, error)
	UpdateOne(ctx context.Context, collection string, id primitive.ObjectID, fields bson.M) (UpdateResult, error)
	Close(ctx context.Context) error
}

func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	return id, nil
}

// FindAll runs Find and decodes every document into T
func FindAll[T any](ctx context.Context, s Store, collection string, opts FindOptions) ([]T, error) {
	docs, err := s.Find(ctx, collection, opts)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s document, %w", collection, err)
		}

		out = append(out, v)
	}

	return out, nil
}
