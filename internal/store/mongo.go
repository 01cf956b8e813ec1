package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to uri and pings the primary before returning
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB, %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB, %w", err)
	}

	zap.L().Debug("Connected to MongoDB", zap.String("database", database))

	return &Mongo{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (m *Mongo) Name() string {
	return m.db.Name()
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Collections(ctx context.Context) ([]string, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections, %w", err)
	}
	slices.Sort(names)

	return names, nil
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s, %w", collection, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unexpected inserted id %v", ErrInvalidID, res.InsertedID)
	}

	return id, nil
}

func (m *Mongo) Find(ctx context.Context, collection string, opts FindOptions) ([]bson.Raw, error) {
	findOpts := options.Find()
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Newest {
		findOpts.SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	}

	cur, err := m.db.Collection(collection).Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s, %w", collection, err)
	}
	defer cur.Close(ctx)

	var docs []bson.Raw
	for cur.Next(ctx) {
		// Current is reused by the cursor
		docs = append(docs, slices.Clone(cur.Current))
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s cursor, %w", collection, err)
	}

	return docs, nil
}

func (m *Mongo) UpdateOne(ctx context.Context, collection string, id primitive.ObjectID, fields bson.M) (UpdateResult, error) {
	res, err := m.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to update %s, %w", collection, err)
	}

	return UpdateResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
