// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
	"murmur/internal/service"
)

// GetMyProfile handles GET /api/accounts/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/accounts/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = userID

	profile, err := s.userService.UpdateProfile(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:id. Email and admin flag are
// redacted from the public view.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetPublicProfile(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":            profile.User.Public(),
		"followers_count": profile.FollowersCount,
		"following_count": profile.FollowingCount,
	})
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), id, true)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User promoted to admin",
		"user":    user,
	})
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), id, false)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User demoted from admin",
		"user":    user,
	})
}
