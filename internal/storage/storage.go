// Package storage defines the document store contract for user accounts
// and per-user favourites sets. Implementations report failures through
// the shared error taxonomy: not_found for absent records, conflict for
// duplicates, persistence for store failures.
package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Email and Username are unique; Email is
// stored case-normalized. The password hash is never serialized.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Username  string             `bson:"username" json:"username"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Favourite is the per-user favourites set, keyed by email. At most one
// document exists per email; MovieIDs holds unique ids in insertion order.
type Favourite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	MovieIDs  []string           `bson:"movie_ids" json:"movieIds"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Storage is the document store interface.
type Storage interface {
	// Health reports whether the store is reachable.
	Health(ctx context.Context) error
	// Close releases the underlying connection.
	Close(ctx context.Context) error

	// CreateUser persists a new account. Fails with a conflict error if
	// the email or username is already taken.
	CreateUser(ctx context.Context, user *User) error
	// FindUserByEmail resolves an account by email. Fails with a
	// not_found error when absent.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	// FindUserByEmailOrUsername resolves an account matching either
	// field, used for the signup uniqueness check. Fails with a
	// not_found error when neither matches.
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	// FindUserByID resolves an account by its hex id. Fails with a
	// validation error for a malformed id and a not_found error when
	// absent.
	FindUserByID(ctx context.Context, id string) (*User, error)

	// AddFavourite appends a movie id to the email's set, creating the
	// set if absent. Fails with a conflict error when the id is already
	// present. The update is a single atomic operation, never a
	// read-modify-write.
	AddFavourite(ctx context.Context, email, movieID string) error
	// ListFavourites returns the set's movie ids, or an empty slice if
	// no set exists. Absence is not an error.
	ListFavourites(ctx context.Context, email string) ([]string, error)
	// RemoveFavourite removes a movie id from the email's set. Fails
	// with a validation error when the set or the id is absent; it
	// never creates a set as a side effect.
	RemoveFavourite(ctx context.Context, email, movieID string) error
}
