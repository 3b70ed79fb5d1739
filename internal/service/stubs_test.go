package service

import (
	"context"
	"errors"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// tokenRepoStub is a stub for repository.TokenRepository.
type tokenRepoStub struct {
	getByKeyFn       func(context.Context, string) (*models.Token, error)
	getByUserIDFn    func(context.Context, uint) (*models.Token, error)
	createFn         func(context.Context, *models.Token) error
	deleteByUserIDFn func(context.Context, uint) error
}

func (s *tokenRepoStub) GetByKey(ctx context.Context, key string) (*models.Token, error) {
	return s.getByKeyFn(ctx, key)
}
func (s *tokenRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Token, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *tokenRepoStub) Create(ctx context.Context, token *models.Token) error {
	return s.createFn(ctx, token)
}
func (s *tokenRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}

func noopTokenRepo() *tokenRepoStub {
	return &tokenRepoStub{
		getByKeyFn:       func(_ context.Context, _ string) (*models.Token, error) { return nil, models.NewUnauthorizedError("Invalid token") },
		getByUserIDFn:    func(_ context.Context, _ uint) (*models.Token, error) { return nil, nil },
		createFn:         func(_ context.Context, _ *models.Token) error { return nil },
		deleteByUserIDFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	listFn    func(context.Context, models.ListQuery) ([]*models.Post, int64, error)
	feedFn    func(context.Context, uint, int, int) ([]*models.Post, int64, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, q models.ListQuery) ([]*models.Post, int64, error) {
	return s.listFn(ctx, q)
}
func (s *postRepoStub) Feed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.feedFn(ctx, followerID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context, _ models.ListQuery) ([]*models.Post, int64, error) { return nil, 0, nil },
		feedFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Post, int64, error) { return nil, 0, nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, models.ListQuery) ([]*models.Comment, int64, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, q models.ListQuery) ([]*models.Comment, int64, error) {
	return s.listByPostFn(ctx, postID, q)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint, _ models.ListQuery) ([]*models.Comment, int64, error) { return nil, 0, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn         func(context.Context, *models.Follow) error
	deleteFn         func(context.Context, uint, uint) (bool, error)
	existsFn         func(context.Context, uint, uint) (bool, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	followingFn      func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, followerID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, followerID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:         func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:         func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		followingFn:      func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
