// Package mongodb implements the document store on MongoDB.
package mongodb

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rajeshbyreddy95/server/internal/common/errors"
	"github.com/rajeshbyreddy95/server/internal/storage"
)

const connectTimeout = 10 * time.Second

// Adapter is the MongoDB-backed storage implementation.
type Adapter struct {
	client     *mongo.Client
	users      *mongo.Collection
	favourites *mongo.Collection
}

// Connect establishes the MongoDB connection, verifies it with a ping
// and ensures the uniqueness indexes the account contract relies on.
func Connect(ctx context.Context, uri, database string) (*Adapter, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.PersistenceError("failed to connect to MongoDB", err).
			WithCode(errors.CodeStoreUnavailable)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.PersistenceError("MongoDB ping failed", err).
			WithCode(errors.CodeStoreUnavailable)
	}

	db := client.Database(database)
	a := &Adapter{
		client:     client,
		users:      db.Collection("users"),
		favourites: db.Collection("favourites"),
	}

	if err := a.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Adapter) ensureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := a.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return errors.PersistenceError("failed to create user indexes", err)
	}

	favIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := a.favourites.Indexes().CreateOne(ctx, favIndex); err != nil {
		return errors.PersistenceError("failed to create favourites index", err)
	}
	return nil
}

// Health reports whether the store is reachable.
func (a *Adapter) Health(ctx context.Context) error {
	if err := a.client.Ping(ctx, nil); err != nil {
		return errors.PersistenceError("MongoDB ping failed", err).
			WithCode(errors.CodeStoreUnavailable)
	}
	return nil
}

// Close releases the underlying connection.
func (a *Adapter) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

// CreateUser persists a new account.
func (a *Adapter) CreateUser(ctx context.Context, user *storage.User) error {
	user.Email = normalizeEmail(user.Email)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := a.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.ConflictError("Email or username already exists")
		}
		return errors.PersistenceError("failed to create user", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindUserByEmail resolves an account by email.
func (a *Adapter) FindUserByEmail(ctx context.Context, email string) (*storage.User, error) {
	return a.findUser(ctx, bson.M{"email": normalizeEmail(email)})
}

// FindUserByEmailOrUsername resolves an account matching either field.
func (a *Adapter) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*storage.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": normalizeEmail(email)},
		bson.M{"username": username},
	}}
	return a.findUser(ctx, filter)
}

// FindUserByID resolves an account by its hex id.
func (a *Adapter) FindUserByID(ctx context.Context, id string) (*storage.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ValidationError("invalid user id")
	}
	return a.findUser(ctx, bson.M{"_id": oid})
}

func (a *Adapter) findUser(ctx context.Context, filter bson.M) (*storage.User, error) {
	var user storage.User
	err := a.users.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundError("User")
	}
	if err != nil {
		return nil, errors.PersistenceError("failed to look up user", err)
	}
	return &user, nil
}

// AddFavourite appends a movie id to the email's set with a single
// $addToSet upsert. The write is atomic, so concurrent adds for the same
// email cannot create two documents or duplicate an id; a no-op update
// means the id was already present.
func (a *Adapter) AddFavourite(ctx context.Context, email, movieID string) error {
	filter := bson.M{"email": normalizeEmail(email)}
	update := bson.M{
		"$addToSet":    bson.M{"movie_ids": movieID},
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}

	result, err := a.favourites.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.PersistenceError("failed to add favourite", err)
	}

	if result.UpsertedCount == 0 && result.ModifiedCount == 0 {
		return errors.ConflictError("Movie already in favourites")
	}
	return nil
}

// ListFavourites returns the set's movie ids, or an empty slice if no
// set exists for the email.
func (a *Adapter) ListFavourites(ctx context.Context, email string) ([]string, error) {
	var favourite storage.Favourite
	err := a.favourites.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&favourite)
	if err == mongo.ErrNoDocuments {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.PersistenceError("failed to list favourites", err)
	}
	if favourite.MovieIDs == nil {
		return []string{}, nil
	}
	return favourite.MovieIDs, nil
}

// RemoveFavourite removes a movie id with a single $pull; a missing set
// or id is reported without ever creating a document.
func (a *Adapter) RemoveFavourite(ctx context.Context, email, movieID string) error {
	filter := bson.M{"email": normalizeEmail(email)}
	update := bson.M{"$pull": bson.M{"movie_ids": movieID}}

	result, err := a.favourites.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.PersistenceError("failed to remove favourite", err)
	}

	if result.MatchedCount == 0 || result.ModifiedCount == 0 {
		return errors.ValidationError("Movie not in favourites")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
