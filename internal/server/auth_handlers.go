// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
	"murmur/internal/service"
)

// Register handles POST /api/accounts/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, key, err := s.authService.Register(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": key,
		"user":  user,
	})
}

// Login handles POST /api/accounts/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, key, err := s.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": key,
		"user":  user,
	})
}

// Logout handles POST /api/accounts/logout. It revokes the caller's token;
// the key stops resolving immediately.
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.authService.Logout(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
