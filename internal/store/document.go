package store

import (
	"bytes"
	"fmt"
	"slices"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Helpers for the backends that keep BSON documents themselves instead
// of leaving it to MongoDB

// prepare encodes doc and makes sure it carries an _id, generating one
// when the document doesn't have it yet
func prepare(doc any) (primitive.ObjectID, bson.Raw, error) {
	b, err := bson.Marshal(doc)
	if err != nil {
		return primitive.NilObjectID, nil, fmt.Errorf("failed to encode document, %w", err)
	}

	raw := bson.Raw(b)
	if v, err := raw.LookupErr("_id"); err == nil {
		id, ok := v.ObjectIDOK()
		if !ok {
			return primitive.NilObjectID, nil, fmt.Errorf("%w: _id must be an ObjectID", ErrInvalidID)
		}

		return id, raw, nil
	}

	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return primitive.NilObjectID, nil, fmt.Errorf("failed to decode document, %w", err)
	}

	id := primitive.NewObjectID()
	d = append(bson.D{{Key: "_id", Value: id}}, d...)

	b, err = bson.Marshal(d)
	if err != nil {
		return primitive.NilObjectID, nil, fmt.Errorf("failed to encode document, %w", err)
	}

	return id, bson.Raw(b), nil
}

// applySet behaves like a $set update. Existing keys are replaced in place
// and new ones appended in key order. modified is false when the resulting
// document is byte for byte the same as before
func applySet(raw bson.Raw, fields bson.M) (bson.Raw, bool, error) {
	if _, ok := fields["_id"]; ok {
		return nil, false, fmt.Errorf("%w: _id is immutable", ErrInvalidID)
	}

	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, false, fmt.Errorf("failed to decode document, %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		i := slices.IndexFunc(d, func(e bson.E) bool { return e.Key == k })
		if i >= 0 {
			d[i].Value = fields[k]
		} else {
			d = append(d, bson.E{Key: k, Value: fields[k]})
		}
	}

	b, err := bson.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode document, %w", err)
	}

	return bson.Raw(b), !bytes.Equal(b, raw), nil
}

func createdAt(raw bson.Raw) (time.Time, bool) {
	v, err := raw.LookupErr("created_at")
	if err != nil {
		return time.Time{}, false
	}

	return v.TimeOK()
}

// newestFirst reverses the insertion order and then stable sorts by
// created_at, pushing documents without one to the end
func newestFirst(docs []bson.Raw) []bson.Raw {
	out := slices.Clone(docs)
	slices.Reverse(out)

	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := createdAt(out[i])
		tj, okj := createdAt(out[j])

		switch {
		case oki && okj:
			return ti.After(tj)
		case oki:
			return true
		default:
			return false
		}
	})

	return out
}
