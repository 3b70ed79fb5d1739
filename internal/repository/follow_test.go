package repository

import (
	"context"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestFollowRepository_CreateAndCounts(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")
	carol := createTestUser(t, users, "carol")

	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: bob.ID, FolloweeID: alice.ID}))
	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: carol.ID, FolloweeID: alice.ID}))

	followers, err := follows.CountFollowers(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := follows.CountFollowing(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)

	exists, err := follows.Exists(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowRepository_DuplicateEdgeConflicts(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: bob.ID, FolloweeID: alice.ID}))

	err := follows.Create(ctx, &models.Follow{FollowerID: bob.ID, FolloweeID: alice.ID})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	// The edge set stays a set.
	count, err := follows.CountFollowers(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The reverse direction is a distinct edge.
	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: alice.ID, FolloweeID: bob.ID}))
}

func TestFollowRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: bob.ID, FolloweeID: alice.ID}))

	removed, err := follows.Delete(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Deleting an absent edge reports false rather than an error.
	removed, err = follows.Delete(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowRepository_Following(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")
	carol := createTestUser(t, users, "carol")

	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: alice.ID, FolloweeID: bob.ID}))
	require.NoError(t, follows.Create(ctx, &models.Follow{FollowerID: alice.ID, FolloweeID: carol.ID}))

	followees, err := follows.Following(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followees, 2)
	assert.Equal(t, "bob", followees[0].Username)
	assert.Equal(t, "carol", followees[1].Username)
}
