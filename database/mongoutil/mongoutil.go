// Package mongoutil holds the query helpers shared by the Mongo repositories.
package mongoutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 5 * time.Second
	ListTimeout  = 10 * time.Second
)

// WithTimeout derives a per-call context from the request context.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

// FindOne decodes the first match into a new T. It returns (nil, nil) when nothing matches.
func FindOne[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := WithTimeout(ctx, ReadTimeout)
	defer cancel()

	var out T
	if err := coll.FindOne(ctx, filter, opts...).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: find one: %w", coll.Name(), err)
	}
	return &out, nil
}

// FindMany decodes every match.
func FindMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := WithTimeout(ctx, ListTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", coll.Name(), err)
	}
	return out, nil
}

// FindPage returns one page of matches, sorted, plus the total match count.
func FindPage[T any](ctx context.Context, coll *mongo.Collection, filter any, sort bson.D, q models.PageQuery) ([]T, int64, error) {
	q = q.Normalize()

	countCtx, cancel := WithTimeout(ctx, ReadTimeout)
	total, err := coll.CountDocuments(countCtx, filter)
	cancel()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", coll.Name(), err)
	}

	opts := options.Find().SetSort(sort).SetSkip(q.Skip()).SetLimit(int64(q.Limit))
	items, err := FindMany[T](ctx, coll, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Aggregate runs a pipeline and decodes every result document.
func Aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	ctx, cancel := WithTimeout(ctx, ListTimeout)
	defer cancel()

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode aggregate: %w", coll.Name(), err)
	}
	return out, nil
}

// InsertOne inserts doc.
func InsertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	ctx, cancel := WithTimeout(ctx, WriteTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", coll.Name(), ErrDuplicate)
		}
		return fmt.Errorf("%s: insert: %w", coll.Name(), err)
	}
	return nil
}

// SetFields applies $set on the document with the given id and stamps updatedAt.
func SetFields(ctx context.Context, coll *mongo.Collection, id string, fields bson.M) error {
	ctx, cancel := WithTimeout(ctx, WriteTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	result, err := coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: update %s: %w", coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s: %s: %w", coll.Name(), id, ErrNotFound)
	}
	return nil
}

// ReplaceByID overwrites the document with the given id. With upsert a missing
// document is inserted.
func ReplaceByID(ctx context.Context, coll *mongo.Collection, id string, doc any, upsert bool) error {
	ctx, cancel := WithTimeout(ctx, WriteTimeout)
	defer cancel()

	result, err := coll.ReplaceOne(ctx, bson.M{"id": id}, doc, options.Replace().SetUpsert(upsert))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", coll.Name(), ErrDuplicate)
		}
		return fmt.Errorf("%s: replace %s: %w", coll.Name(), id, err)
	}
	if !upsert && result.MatchedCount == 0 {
		return fmt.Errorf("%s: %s: %w", coll.Name(), id, ErrNotFound)
	}
	return nil
}

// DeleteByID removes the document with the given id.
func DeleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	ctx, cancel := WithTimeout(ctx, WriteTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("%s: delete %s: %w", coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s: %s: %w", coll.Name(), id, ErrNotFound)
	}
	return nil
}

// EnsureIndexes creates the given indexes on coll.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	ctx, cancel := WithTimeout(ctx, ListTimeout)
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("%s: failed to create indexes: %w", coll.Name(), err)
	}
	return nil
}

var (
	// ErrNotFound is returned by writes that matched no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects an insert.
	ErrDuplicate = errors.New("duplicate document")
)
