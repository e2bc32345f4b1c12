package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajeshbyreddy95/server/internal/common/errors"
	"github.com/rajeshbyreddy95/server/internal/storage"
)

func newUser(email, username string) *storage.User {
	return &storage.User{
		Email:    email,
		Username: username,
		Name:     "Test User",
		Password: "hashed",
	}
}

func TestCreateUser_AssignsIDAndNormalizesEmail(t *testing.T) {
	store := New()
	ctx := context.Background()

	user := newUser("  Neo@Matrix.IO ", "neo")
	require.NoError(t, store.CreateUser(ctx, user))

	assert.False(t, user.ID.IsZero())
	assert.False(t, user.CreatedAt.IsZero())

	found, err := store.FindUserByEmail(ctx, "neo@matrix.io")
	require.NoError(t, err)
	assert.Equal(t, "neo@matrix.io", found.Email)
	assert.Equal(t, user.ID, found.ID)
}

func TestCreateUser_DuplicateConflicts(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newUser("neo@matrix.io", "neo")))

	err := store.CreateUser(ctx, newUser("neo@matrix.io", "other"))
	assert.True(t, errors.IsType(err, errors.ErrTypeConflict), "duplicate email conflicts")

	err = store.CreateUser(ctx, newUser("other@matrix.io", "neo"))
	assert.True(t, errors.IsType(err, errors.ErrTypeConflict), "duplicate username conflicts")
}

func TestFindUser_NotFound(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.FindUserByEmail(ctx, "ghost@nowhere.io")
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))

	_, err = store.FindUserByEmailOrUsername(ctx, "ghost@nowhere.io", "ghost")
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestFindUserByEmailOrUsername_MatchesEitherField(t *testing.T) {
	store := New()
	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, newUser("neo@matrix.io", "neo")))

	byEmail, err := store.FindUserByEmailOrUsername(ctx, "neo@matrix.io", "someone-else")
	require.NoError(t, err)
	assert.Equal(t, "neo", byEmail.Username)

	byUsername, err := store.FindUserByEmailOrUsername(ctx, "other@matrix.io", "neo")
	require.NoError(t, err)
	assert.Equal(t, "neo@matrix.io", byUsername.Email)
}

func TestFindUserByID(t *testing.T) {
	store := New()
	ctx := context.Background()

	user := newUser("neo@matrix.io", "neo")
	require.NoError(t, store.CreateUser(ctx, user))

	found, err := store.FindUserByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = store.FindUserByID(ctx, "not-a-hex-id")
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation), "unparsable id is a validation error")

	_, err = store.FindUserByID(ctx, "64a0f0a0b1c2d3e4f5a6b7c8")
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestAddFavourite(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.AddFavourite(ctx, "neo@matrix.io", "603"))
	require.NoError(t, store.AddFavourite(ctx, "neo@matrix.io", "604"))

	err := store.AddFavourite(ctx, "neo@matrix.io", "603")
	assert.True(t, errors.IsType(err, errors.ErrTypeConflict), "re-adding the same movie conflicts")

	ids, err := store.ListFavourites(ctx, "neo@matrix.io")
	require.NoError(t, err)
	assert.Equal(t, []string{"603", "604"}, ids)
}

func TestListFavourites_EmptyWithoutSet(t *testing.T) {
	store := New()

	ids, err := store.ListFavourites(context.Background(), "ghost@nowhere.io")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestRemoveFavourite(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.AddFavourite(ctx, "neo@matrix.io", "603"))
	require.NoError(t, store.AddFavourite(ctx, "neo@matrix.io", "604"))
	require.NoError(t, store.AddFavourite(ctx, "neo@matrix.io", "605"))

	require.NoError(t, store.RemoveFavourite(ctx, "neo@matrix.io", "604"))

	ids, err := store.ListFavourites(ctx, "neo@matrix.io")
	require.NoError(t, err)
	assert.Equal(t, []string{"603", "605"}, ids, "remaining ids keep their order")

	err = store.RemoveFavourite(ctx, "neo@matrix.io", "604")
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation), "removing an absent movie fails")
}

func TestRemoveFavourite_NeverCreatesSet(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.RemoveFavourite(ctx, "ghost@nowhere.io", "603")
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

	ids, err := store.ListFavourites(ctx, "ghost@nowhere.io")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavourites_EmailsAreNormalized(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.AddFavourite(ctx, " Neo@Matrix.IO ", "603"))

	ids, err := store.ListFavourites(ctx, "neo@matrix.io")
	require.NoError(t, err)
	assert.Equal(t, []string{"603"}, ids)
}
