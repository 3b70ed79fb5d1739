package service

import (
	"context"

	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, targetID uint) (*models.User, error)
	Unfollow(ctx context.Context, followerID, targetID uint) (*models.User, error)
	Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error)
}

type followService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

func NewFollowService(users repository.UserRepository, follows repository.FollowRepository) FollowService {
	return &followService{users: users, follows: follows}
}

func (s *followService) Follow(ctx context.Context, followerID, targetID uint) (*models.User, error) {
	if followerID == targetID {
		middleware.FollowOperations.WithLabelValues("follow", "rejected").Inc()
		return nil, models.NewValidationError("You cannot follow yourself")
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		middleware.FollowOperations.WithLabelValues("follow", "rejected").Inc()
		return nil, err
	}

	edge := &models.Follow{FollowerID: followerID, FolloweeID: targetID}
	if err := s.follows.Create(ctx, edge); err != nil {
		middleware.FollowOperations.WithLabelValues("follow", "rejected").Inc()
		return nil, err
	}
	middleware.FollowOperations.WithLabelValues("follow", "ok").Inc()
	return target, nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, targetID uint) (*models.User, error) {
	if followerID == targetID {
		middleware.FollowOperations.WithLabelValues("unfollow", "rejected").Inc()
		return nil, models.NewValidationError("You cannot unfollow yourself")
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		middleware.FollowOperations.WithLabelValues("unfollow", "rejected").Inc()
		return nil, err
	}

	removed, err := s.follows.Delete(ctx, followerID, targetID)
	if err != nil {
		middleware.FollowOperations.WithLabelValues("unfollow", "rejected").Inc()
		return nil, err
	}
	if !removed {
		middleware.FollowOperations.WithLabelValues("unfollow", "rejected").Inc()
		return nil, models.NewConflictError("You are not following this user")
	}
	middleware.FollowOperations.WithLabelValues("unfollow", "ok").Inc()
	return target, nil
}

func (s *followService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	users, err := s.follows.Following(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
