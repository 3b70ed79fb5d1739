package service

import (
	"context"
	"strings"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.Profile, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.Profile, error)
	GetPublicProfile(ctx context.Context, userID uint) (*models.Profile, error)
	SetAdmin(ctx context.Context, userID uint, isAdmin bool) (*models.User, error)
}

type userService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

func NewUserService(users repository.UserRepository, follows repository.FollowRepository) UserService {
	return &userService{users: users, follows: follows}
}

type UpdateProfileInput struct {
	UserID uint
	Email  *string `json:"email"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

func (s *userService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.Profile, error) {
	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := validation.ValidateEmail(*input.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = strings.ToLower(*input.Email)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

// GetPublicProfile returns another user's profile. It shares the Profile
// shape with GetProfile; field redaction happens at the handler via
// User.Public.
func (s *userService) GetPublicProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.GetProfile(ctx, userID)
}

func (s *userService) SetAdmin(ctx context.Context, userID uint, isAdmin bool) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin == isAdmin {
		return user, nil
	}
	user.IsAdmin = isAdmin
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) buildProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	followers, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}
