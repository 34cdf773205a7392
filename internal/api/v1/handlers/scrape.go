package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/jobradar/jobradar/internal/services"
	"github.com/jobradar/jobradar/internal/types"
)

// ScrapeHandler handles HTTP requests for triggering aggregation runs
type ScrapeHandler struct {
	aggregator *services.Aggregator
	registry   *services.Registry
}

// NewScrapeHandler creates a new scrape handler instance
func NewScrapeHandler(aggregator *services.Aggregator, registry *services.Registry) *ScrapeHandler {
	return &ScrapeHandler{aggregator: aggregator, registry: registry}
}

// RunAll triggers a run over every enabled pair and returns the run summary
func (h *ScrapeHandler) RunAll(c *fiber.Ctx) error {
	summary, err := h.aggregator.RunAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(summary))
}

// RunPlatform triggers a run scoped to one job board
func (h *ScrapeHandler) RunPlatform(c *fiber.Ctx) error {
	platform := c.Params("platform")
	if platform == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("platform is required"))
	}

	summary, err := h.aggregator.RunPlatform(c.Context(), platform)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound(err.Error()))
	}
	return c.JSON(types.Success(summary))
}

// RunCompany triggers a run scoped to one company's enabled pairs
func (h *ScrapeHandler) RunCompany(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid company ID"))
	}

	summary, err := h.aggregator.RunCompany(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(summary))
}

// Stats returns per-board pair health and job counts
func (h *ScrapeHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.registry.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(stats))
}
