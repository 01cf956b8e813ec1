package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unavailable stands in for a store that was never configured or could
// not be reached at startup. Every operation fails with ErrUnavailable
type Unavailable struct {
	Reason error
}

func NewUnavailable(reason error) *Unavailable {
	return &Unavailable{Reason: reason}
}

// IsUnavailable reports whether s is the placeholder store
func IsUnavailable(s Store) bool {
	_, ok := s.(*Unavailable)
	return s == nil || ok
}

func (u *Unavailable) err() error {
	if u.Reason == nil {
		return ErrUnavailable
	}

	return fmt.Errorf("%w, %w", ErrUnavailable, u.Reason)
}

func (u *Unavailable) Name() string {
	return ""
}

func (u *Unavailable) Ping(context.Context) error {
	return u.err()
}

func (u *Unavailable) Collections(context.Context) ([]string, error) {
	return nil, u.err()
}

func (u *Unavailable) Insert(context.Context, string, any) (primitive.ObjectID, error) {
	return primitive.NilObjectID, u.err()
}

func (u *Unavailable) Find(context.Context, string, FindOptions) ([]bson.Raw, error) {
	return nil, u.err()
}

func (u *Unavailable) UpdateOne(context.Context, string, primitive.ObjectID, bson.M) (UpdateResult, error) {
	return UpdateResult{}, u.err()
}

func (u *Unavailable) Close(context.Context) error {
	return nil
}
