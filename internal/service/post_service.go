package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, q models.ListQuery) ([]*models.Post, int64, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*models.Post, error)
	DeletePost(ctx context.Context, userID, postID uint) error
	Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
}

type postService struct {
	posts   repository.PostRepository
	isAdmin func(ctx context.Context, userID uint) bool
}

func NewPostService(posts repository.PostRepository, isAdmin func(ctx context.Context, userID uint) bool) PostService {
	if isAdmin == nil {
		isAdmin = func(context.Context, uint) bool { return false }
	}
	return &postService{posts: posts, isAdmin: isAdmin}
}

type CreatePostInput struct {
	UserID          uint
	Title           string `json:"title"`
	Content         string `json:"content"`
	PublicationYear int    `json:"publication_year"`
}

type UpdatePostInput struct {
	UserID          uint
	PostID          uint
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	PublicationYear *int    `json:"publication_year"`
}

func (s *postService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	title, err := validation.ValidateTitle(input.Title)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContent(input.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePublicationYear(input.PublicationYear); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:           title,
		Content:         input.Content,
		PublicationYear: input.PublicationYear,
		UserID:          input.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *postService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context, q models.ListQuery) ([]*models.Post, int64, error) {
	return s.posts.List(ctx, q)
}

// UpdatePost is owner-only. Admins may delete any post but not edit one.
func (s *postService) UpdatePost(ctx context.Context, input UpdatePostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != input.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if input.Title != nil {
		title, err := validation.ValidateTitle(*input.Title)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = title
	}
	if input.Content != nil {
		if err := validation.ValidateContent(*input.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = *input.Content
	}
	if input.PublicationYear != nil {
		if err := validation.ValidatePublicationYear(*input.PublicationYear); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.PublicationYear = *input.PublicationYear
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *postService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID && !s.isAdmin(ctx, userID) {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.posts.Delete(ctx, postID)
}

func (s *postService) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.posts.Feed(ctx, userID, limit, offset)
}
