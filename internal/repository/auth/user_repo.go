package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"chatdesk/internal/apperr"
	"chatdesk/internal/model/auth"
)

// UserRepo owns the users collection.
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates the repository.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user. The unique email index rejects duplicates.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.InvalidState("email already registered")
	}
	if err != nil {
		return apperr.Store(err)
	}
	return nil
}

// FindByEmail looks a user up by email. Returns (nil, nil) when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &user, nil
}

// FindByID looks a user up by id. Returns (nil, nil) when absent.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &user, nil
}

// UpdateFields applies a partial update and stamps updated_at.
func (r *UserRepo) UpdateFields(ctx context.Context, id string, set bson.M) error {
	set["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return apperr.Store(err)
	}
	return nil
}

// StampLastLogin records a successful login.
func (r *UserRepo) StampLastLogin(ctx context.Context, id string) error {
	return r.UpdateFields(ctx, id, bson.M{"last_login_at": time.Now()})
}
