package service

import (
	"context"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	t.Parallel()

	t.Run("self follow is rejected", func(t *testing.T) {
		svc := NewFollowService(noopUserRepo(), noopFollowRepo())
		_, err := svc.Follow(context.Background(), 1, 1)
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("missing target is not found", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFollowService(users, noopFollowRepo())
		_, err := svc.Follow(context.Background(), 1, 99)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("creates edge and returns target", func(t *testing.T) {
		follows := noopFollowRepo()
		var edge *models.Follow
		follows.createFn = func(_ context.Context, f *models.Follow) error {
			edge = f
			return nil
		}
		svc := NewFollowService(noopUserRepo(), follows)
		target, err := svc.Follow(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), target.ID)
		require.NotNil(t, edge)
		assert.Equal(t, uint(1), edge.FollowerID)
		assert.Equal(t, uint(2), edge.FolloweeID)
	})

	t.Run("duplicate edge surfaces conflict", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.createFn = func(_ context.Context, _ *models.Follow) error {
			return models.NewConflictError("Already following this user")
		}
		svc := NewFollowService(noopUserRepo(), follows)
		_, err := svc.Follow(context.Background(), 1, 2)
		assertAppErrorCode(t, err, models.CodeConflict)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Parallel()

	t.Run("self unfollow is rejected", func(t *testing.T) {
		svc := NewFollowService(noopUserRepo(), noopFollowRepo())
		_, err := svc.Unfollow(context.Background(), 1, 1)
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("removes edge", func(t *testing.T) {
		follows := noopFollowRepo()
		var gotFollower, gotFollowee uint
		follows.deleteFn = func(_ context.Context, followerID, followeeID uint) (bool, error) {
			gotFollower, gotFollowee = followerID, followeeID
			return true, nil
		}
		svc := NewFollowService(noopUserRepo(), follows)
		target, err := svc.Unfollow(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), target.ID)
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowee)
	})

	t.Run("not following surfaces conflict", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.deleteFn = func(_ context.Context, _, _ uint) (bool, error) {
			return false, nil
		}
		svc := NewFollowService(noopUserRepo(), follows)
		_, err := svc.Unfollow(context.Background(), 1, 2)
		assertAppErrorCode(t, err, models.CodeConflict)
	})
}

func TestFollowService_Following(t *testing.T) {
	follows := noopFollowRepo()
	follows.followingFn = func(_ context.Context, followerID uint, limit, offset int) ([]models.User, error) {
		assert.Equal(t, uint(1), followerID)
		assert.Equal(t, 1, limit)
		return []models.User{{ID: 2, Username: "bob"}}, nil
	}
	follows.countFollowingFn = func(_ context.Context, userID uint) (int64, error) {
		return 2, nil
	}

	svc := NewFollowService(noopUserRepo(), follows)
	users, total, err := svc.Following(context.Background(), 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)
}
