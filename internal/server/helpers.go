// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"strings"

	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds limit/offset derived from page/page_size query parameters.
type Pagination struct {
	Page     int
	PageSize int
	Limit    int
	Offset   int
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// parsePagination extracts page and page_size query parameters. Pages are
// 1-based; out-of-range values fall back to defaults rather than erroring.
func parsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	size := c.QueryInt("page_size", defaultPageSize)
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: size,
		Limit:    size,
		Offset:   (page - 1) * size,
	}
}

// pagedResponse is the envelope for all list endpoints.
func pagedResponse(page Pagination, total int64, results any) fiber.Map {
	return fiber.Map{
		"count":     total,
		"page":      page.Page,
		"page_size": page.PageSize,
		"results":   results,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// respondServiceError maps a service-layer error onto its HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}

// bearerToken extracts the opaque key from the Authorization header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// isAdminByUserID reports whether the given user has admin privileges.
// Lookup failures read as non-admin.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) bool {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		return false
	}
	return user.IsAdmin
}
