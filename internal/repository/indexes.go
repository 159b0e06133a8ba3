package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes every collection relies on. Safe to
// call on every startup; MongoDB treats existing indexes as no-ops.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := (&categoryMongoRepository{collection: db.Collection("categories")}).CreateIndexes(ctx); err != nil {
		return err
	}
	if err := (&productMongoRepository{collection: db.Collection("products")}).CreateIndexes(ctx); err != nil {
		return err
	}
	if err := (&orderMongoRepository{collection: db.Collection("orders")}).CreateIndexes(ctx); err != nil {
		return err
	}
	if err := (&userMongoRepository{collection: db.Collection("users")}).CreateIndexes(ctx); err != nil {
		return err
	}
	return nil
}
