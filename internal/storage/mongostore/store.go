// Package mongostore implements the document-backed stores (users, articles,
// contact messages, newsletter subscribers, donations) on MongoDB. Each
// aggregate gets its own store type over a collection handle.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harborlight/backend/internal/storage"
)

// objectID parses a hex id, mapping malformed input to ErrNotFound so handlers
// treat a garbage id the same as a missing record.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storage.ErrNotFound
	}
	return oid, nil
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	return err
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
