package store

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory keeps documents in process. It's used when database.type is
// "memory" and by the HTTP tests
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.Raw
}

func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]bson.Raw),
	}
}

func (m *Memory) Name() string {
	return "memory"
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) Collections(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}

func (m *Memory) Insert(_ context.Context, collection string, doc any) (primitive.ObjectID, error) {
	id, raw, err := prepare(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.collections[collection] = append(m.collections[collection], raw)
	return id, nil
}

func (m *Memory) Find(_ context.Context, collection string, opts FindOptions) ([]bson.Raw, error) {
	m.mu.RLock()
	docs := slices.Clone(m.collections[collection])
	m.mu.RUnlock()

	if opts.Newest {
		docs = newestFirst(docs)
	}

	if opts.Limit > 0 && int64(len(docs)) > opts.Limit {
		docs = docs[:opts.Limit]
	}

	return docs, nil
}

func (m *Memory) UpdateOne(_ context.Context, collection string, id primitive.ObjectID, fields bson.M) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collections[collection]
	for i, raw := range docs {
		v, err := raw.LookupErr("_id")
		if err != nil {
			continue
		}

		if docID, ok := v.ObjectIDOK(); !ok || docID != id {
			continue
		}

		updated, modified, err := applySet(raw, fields)
		if err != nil {
			return UpdateResult{}, err
		}

		res := UpdateResult{Matched: 1}
		if modified {
			docs[i] = updated
			res.Modified = 1
		}

		return res, nil
	}

	return UpdateResult{}, nil
}

func (m *Memory) Close(context.Context) error {
	return nil
}
