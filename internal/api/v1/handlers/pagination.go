// Package handlers provides HTTP request handling
package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/jobradar/jobradar/internal/db/models"
)

const (
	// MaxPageSize is the maximum allowed page size
	MaxPageSize = 200
)

// getPaginationOptions returns a ListOptions struct with validated pagination parameters
func getPaginationOptions(c *fiber.Ctx) *models.ListOptions {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", models.DefaultLimit)
	if limit < 1 {
		limit = models.DefaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return &models.ListOptions{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
