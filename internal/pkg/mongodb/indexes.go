package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"chatdesk/internal/model"
	"chatdesk/internal/model/auth"
)

// EnsureIndexes creates the indexes for every collection. Runs once at
// server startup; index creation is idempotent.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&model.Conversation{},
		&auth.User{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
