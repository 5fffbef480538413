package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openummah/masjidhub/internal/directory/store"
)

// wrapErr maps driver errors onto the store sentinels. Server selection
// timeouts and network failures become ErrUnavailable so callers can
// distinguish "store down" from genuine query errors.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongodrv.ErrNoDocuments):
		return store.ErrNotFound
	case mongodrv.IsDuplicateKeyError(err):
		return store.ErrAlreadyExists
	case mongodrv.IsTimeout(err), mongodrv.IsNetworkError(err):
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}

func findOne[T any](ctx context.Context, col *mongodrv.Collection, filter bson.D) (T, error) {
	var result T
	if err := col.FindOne(ctx, filter).Decode(&result); err != nil {
		var zero T
		return zero, wrapErr(err)
	}
	return result, nil
}

func findMany[T any](ctx context.Context, col *mongodrv.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return results, nil
}

func insertOne(ctx context.Context, col *mongodrv.Collection, doc any) error {
	_, err := col.InsertOne(ctx, doc)
	return wrapErr(err)
}

// updateFields applies a $set by _id, returning ErrNotFound when nothing
// matched.
func updateFields(ctx context.Context, col *mongodrv.Collection, id string, update bson.D) error {
	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: update}})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
