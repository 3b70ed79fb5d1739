package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

type CommentService interface {
	CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error)
	ListComments(ctx context.Context, postID uint, q models.ListQuery) ([]*models.Comment, int64, error)
	UpdateComment(ctx context.Context, input UpdateCommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID uint) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) bool
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, isAdmin func(ctx context.Context, userID uint) bool) CommentService {
	if isAdmin == nil {
		isAdmin = func(context.Context, uint) bool { return false }
	}
	return &commentService{comments: comments, posts: posts, isAdmin: isAdmin}
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string `json:"content"`
}

type UpdateCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	Content   string `json:"content"`
}

func (s *commentService) CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, input.PostID); err != nil {
		return nil, err
	}
	if err := validation.ValidateContent(input.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Content: input.Content,
		UserID:  input.UserID,
		PostID:  input.PostID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

func (s *commentService) ListComments(ctx context.Context, postID uint, q models.ListQuery) ([]*models.Comment, int64, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByPost(ctx, postID, q)
}

func (s *commentService) UpdateComment(ctx context.Context, input UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.getForPost(ctx, input.PostID, input.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != input.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}
	if err := validation.ValidateContent(input.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment.Content = input.Content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

func (s *commentService) DeleteComment(ctx context.Context, userID, postID, commentID uint) error {
	comment, err := s.getForPost(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && !s.isAdmin(ctx, userID) {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.comments.Delete(ctx, commentID)
}

// getForPost loads a comment and checks it belongs to the routed post. A
// mismatch reads as not found rather than leaking which post the comment is
// really on.
func (s *commentService) getForPost(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	return comment, nil
}
