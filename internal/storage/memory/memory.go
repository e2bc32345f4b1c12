// Package memory implements the document store in process memory. It is
// used by tests and mirrors the MongoDB adapter's error contract,
// including atomic favourites mutations under a single lock.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajeshbyreddy95/server/internal/common/errors"
	"github.com/rajeshbyreddy95/server/internal/storage"
)

// Adapter is the in-memory storage implementation.
type Adapter struct {
	mu         sync.RWMutex
	users      map[string]*storage.User // keyed by hex id
	favourites map[string][]string      // keyed by normalized email
}

// New creates an empty in-memory store.
func New() *Adapter {
	return &Adapter{
		users:      map[string]*storage.User{},
		favourites: map[string][]string{},
	}
}

// Health always succeeds for the in-memory store.
func (a *Adapter) Health(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (a *Adapter) Close(ctx context.Context) error { return nil }

// CreateUser persists a new account.
func (a *Adapter) CreateUser(ctx context.Context, user *storage.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	email := normalizeEmail(user.Email)
	for _, existing := range a.users {
		if existing.Email == email || existing.Username == user.Username {
			return errors.ConflictError("Email or username already exists")
		}
	}

	user.Email = email
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	a.users[user.ID.Hex()] = &stored
	return nil
}

// FindUserByEmail resolves an account by email.
func (a *Adapter) FindUserByEmail(ctx context.Context, email string) (*storage.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	normalized := normalizeEmail(email)
	for _, user := range a.users {
		if user.Email == normalized {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFoundError("User")
}

// FindUserByEmailOrUsername resolves an account matching either field.
func (a *Adapter) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*storage.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	normalized := normalizeEmail(email)
	for _, user := range a.users {
		if user.Email == normalized || user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFoundError("User")
}

// FindUserByID resolves an account by its hex id.
func (a *Adapter) FindUserByID(ctx context.Context, id string) (*storage.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, errors.ValidationError("invalid user id")
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	user, ok := a.users[id]
	if !ok {
		return nil, errors.NotFoundError("User")
	}
	copied := *user
	return &copied, nil
}

// AddFavourite appends a movie id to the email's set, creating the set
// if absent.
func (a *Adapter) AddFavourite(ctx context.Context, email, movieID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	normalized := normalizeEmail(email)
	ids := a.favourites[normalized]
	for _, id := range ids {
		if id == movieID {
			return errors.ConflictError("Movie already in favourites")
		}
	}
	a.favourites[normalized] = append(ids, movieID)
	return nil
}

// ListFavourites returns the set's movie ids, or an empty slice if no
// set exists.
func (a *Adapter) ListFavourites(ctx context.Context, email string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids, ok := a.favourites[normalizeEmail(email)]
	if !ok {
		return []string{}, nil
	}
	copied := make([]string, len(ids))
	copy(copied, ids)
	return copied, nil
}

// RemoveFavourite removes a movie id from the email's set without ever
// creating one.
func (a *Adapter) RemoveFavourite(ctx context.Context, email, movieID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	normalized := normalizeEmail(email)
	ids, ok := a.favourites[normalized]
	if !ok {
		return errors.ValidationError("Movie not in favourites")
	}

	for i, id := range ids {
		if id == movieID {
			a.favourites[normalized] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return errors.ValidationError("Movie not in favourites")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
