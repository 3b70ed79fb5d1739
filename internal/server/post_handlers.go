// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
	"murmur/internal/service"
)

// postListQuery builds a ListQuery from the request's filter, search and
// ordering parameters. Unknown filter and ordering names are ignored
// downstream rather than rejected.
func postListQuery(c *fiber.Ctx, page Pagination) models.ListQuery {
	filters := make(map[string]any)
	if year := c.QueryInt("publication_year", -1); year >= 0 {
		filters["publication_year"] = year
	}
	if author := c.QueryInt("author", 0); author > 0 {
		filters["author"] = uint(author)
	}

	return models.ListQuery{
		Filters:  filters,
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = userID

	post, err := s.postService.CreatePost(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c)

	posts, total, err := s.postService.ListPosts(c.Context(), postListQuery(c, page))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(pagedResponse(page, total, posts))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = userID
	req.PostID = postID

	post, err := s.postService.UpdatePost(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFeed handles GET /api/feed. It returns posts authored by users the
// caller follows, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c)

	posts, total, err := s.postService.Feed(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(pagedResponse(page, total, posts))
}
