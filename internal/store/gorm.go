package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// document is a single BSON document kept in a SQL table. The created_at
// column is copied out of the document so listings can sort on it
type document struct {
	Seq        uint       `gorm:"primaryKey;autoIncrement"`
	ID         string     `gorm:"size:24;uniqueIndex;not null"`
	Collection string     `gorm:"size:64;index;not null"`
	Data       []byte     `gorm:"not null"`
	CreatedAt  *time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (document) TableName() string {
	return "documents"
}

// Gorm stores documents in SQLite or Postgres through gorm
type Gorm struct {
	db   *gorm.DB
	name string
}

// NewGorm migrates the documents table on db
func NewGorm(db *gorm.DB, name string) (*Gorm, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return &Gorm{db: db, name: name}, nil
}

func (g *Gorm) Name() string {
	return g.name
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (g *Gorm) Collections(ctx context.Context) ([]string, error) {
	var names []string

	err := g.db.WithContext(ctx).
		Model(&document{}).
		Distinct("collection").
		Order("collection").
		Pluck("collection", &names).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collections, %w", err)
	}

	return names, nil
}

func (g *Gorm) Insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	id, raw, err := prepare(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	row := document{
		ID:         id.Hex(),
		Collection: collection,
		Data:       raw,
	}
	if t, ok := createdAt(raw); ok {
		row.CreatedAt = &t
	}

	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s, %w", collection, err)
	}

	return id, nil
}

func (g *Gorm) Find(ctx context.Context, collection string, opts FindOptions) ([]bson.Raw, error) {
	q := g.db.WithContext(ctx).Where("collection = ?", collection)

	if opts.Newest {
		// Postgres sorts NULLs first when descending, SQLite last
		q = q.Order("created_at IS NULL").Order("created_at desc").Order("seq desc")
	} else {
		q = q.Order("seq")
	}

	if opts.Limit > 0 {
		q = q.Limit(int(opts.Limit))
	}

	var rows []document
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s, %w", collection, err)
	}

	docs := make([]bson.Raw, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, bson.Raw(r.Data))
	}

	return docs, nil
}

func (g *Gorm) UpdateOne(ctx context.Context, collection string, id primitive.ObjectID, fields bson.M) (UpdateResult, error) {
	var res UpdateResult

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row document

		err := tx.
			Where("collection = ? AND id = ?", collection, id.Hex()).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}

			return err
		}
		res.Matched = 1

		updated, modified, err := applySet(bson.Raw(row.Data), fields)
		if err != nil {
			return err
		}

		if !modified {
			return nil
		}

		err = tx.
			Model(&row).
			Update("data", []byte(updated)).
			Error
		if err != nil {
			return err
		}
		res.Modified = 1

		return nil
	})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to update %s, %w", collection, err)
	}

	return res, nil
}

func (g *Gorm) Close(context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
