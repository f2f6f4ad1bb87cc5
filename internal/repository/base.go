package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection is the generic core shared by all typed repositories. Absent
// documents are reported as (nil, nil), never as an error: a missing entity
// is an expected domain outcome, not a store failure.
type collection[T any] struct {
	coll *mongo.Collection
}

func (c collection[T]) get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s document: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

func (c collection[T]) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read %s cursor: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

func (c collection[T]) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", c.coll.Name(), err)
	}
	return count > 0, nil
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert %s document: %w", c.coll.Name(), err)
	}
	return nil
}

func (c collection[T]) replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	if _, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc); err != nil {
		return fmt.Errorf("failed to update %s document: %w", c.coll.Name(), err)
	}
	return nil
}

func (c collection[T]) remove(ctx context.Context, id primitive.ObjectID) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to remove %s document: %w", c.coll.Name(), err)
	}
	return nil
}

// parseID maps an id string to its ObjectID. A malformed id can never match a
// stored document, so callers translate the false return into "not found".
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}
