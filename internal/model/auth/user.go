package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User is an account holder. ID is a UUID string rather than an ObjectID so
// it can be handed to the frontend and back without conversion.
type User struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	FullName    string     `bson:"full_name" json:"fullName"`
	Email       string     `bson:"email" json:"email"`
	Password    string     `bson:"password" json:"-"`
	Avatar      string     `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role        UserRole   `bson:"role" json:"role"`
	IsVerified  bool       `bson:"is_verified" json:"isVerified"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// UserRole user role.
type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleAdmin   UserRole = "admin"
	RoleSupport UserRole = "support"
)

// IsValid checks whether the role is a known value.
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSupport
}

// Collection implements mongodb.Model.
func (u *User) Collection() string {
	return "users"
}

// EnsureIndexes implements mongodb.Model.
func (u *User) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(u.Collection())

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
