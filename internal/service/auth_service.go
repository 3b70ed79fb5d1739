package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

// AuthService handles registration, login and opaque token resolution.
// Each user holds at most one live token; logging in again returns the
// existing key instead of rotating it.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Logout(ctx context.Context, userID uint) error
	Resolve(ctx context.Context, key string) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository) AuthService {
	return &authService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    strings.ToLower(input.Email),
		Password: string(hash),
		Bio:      input.Bio,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	key, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, key, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	key, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, key, nil
}

func (s *authService) Logout(ctx context.Context, userID uint) error {
	return s.tokens.DeleteByUserID(ctx, userID)
}

// Resolve maps a bearer key to its owning user.
func (s *authService) Resolve(ctx context.Context, key string) (*models.User, error) {
	token, err := s.tokens.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid token")
	}
	return user, nil
}

// issueToken returns the user's existing token key, creating one if absent.
// The unique constraint on user_id makes concurrent logins converge on a
// single row; on conflict we re-read the winning key.
func (s *authService) issueToken(ctx context.Context, userID uint) (string, error) {
	existing, err := s.tokens.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.Key, nil
	}

	token := &models.Token{Key: newTokenKey(), UserID: userID}
	if err := s.tokens.Create(ctx, token); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
			winner, rerr := s.tokens.GetByUserID(ctx, userID)
			if rerr != nil {
				return "", rerr
			}
			if winner != nil {
				return winner.Key, nil
			}
		}
		return "", err
	}
	return token.Key, nil
}

func newTokenKey() string {
	a := strings.ReplaceAll(uuid.New().String(), "-", "")
	b := strings.ReplaceAll(uuid.New().String(), "-", "")
	return a + b
}
