// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/accounts/follow/:id
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	target, err := s.followService.Follow(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Now following " + target.Username,
		"user":    target.Public(),
	})
}

// UnfollowUser handles POST /api/accounts/unfollow/:id
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	target, err := s.followService.Unfollow(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Unfollowed " + target.Username,
		"user":    target.Public(),
	})
}

// GetFollowing handles GET /api/accounts/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c)

	users, total, err := s.followService.Following(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	public := make([]any, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	return c.JSON(pagedResponse(page, total, public))
}
