package repository

import (
	"context"
	"errors"

	"murmur/internal/cache"
	"murmur/internal/models"

	"gorm.io/gorm"
)

// TokenRepository defines persistence operations for opaque bearer tokens.
type TokenRepository interface {
	GetByKey(ctx context.Context, key string) (*models.Token, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Token, error)
	Create(ctx context.Context, token *models.Token) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository returns a new TokenRepository implementation.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) GetByKey(ctx context.Context, key string) (*models.Token, error) {
	var token models.Token

	err := cache.Aside(ctx, cache.TokenKey(key), &token, cache.TokenTTL, func() error {
		if err := r.db.WithContext(ctx).Where("key = ?", key).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewUnauthorizedError("Invalid token")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) GetByUserID(ctx context.Context, userID uint) (*models.Token, error) {
	var token models.Token
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &token, nil
}

// Create inserts a token. The unique index on user_id makes concurrent
// issuance for the same user resolve to one insert and one conflict; callers
// re-read on conflict.
func (r *tokenRepository) Create(ctx context.Context, token *models.Token) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Token already issued")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	var token models.Token
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&token).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateToken(ctx, token.Key)
	return nil
}
