package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates all collection indexes the repositories rely on.
// Called once at startup, before the HTTP server begins serving.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewChirpRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return NewAuthRepository(db).EnsureIndexes(ctx)
}
