// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
	"murmur/internal/service"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.CreateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = userID
	req.PostID = postID

	comment, err := s.commentService.CreateComment(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c)
	q := models.ListQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	comments, total, err := s.commentService.ListComments(c.Context(), postID, q)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(pagedResponse(page, total, comments))
}

// UpdateComment handles PUT /api/posts/:id/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req service.UpdateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = userID
	req.PostID = postID
	req.CommentID = commentID

	comment, err := s.commentService.UpdateComment(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), userID, postID, commentID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
