package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/jobradar/jobradar/internal/services"
	"github.com/jobradar/jobradar/internal/types"
)

// ScheduleHandler handles HTTP requests for the recurring-run schedule
type ScheduleHandler struct {
	schedule *services.Schedule
}

// NewScheduleHandler creates a new schedule handler instance
func NewScheduleHandler(schedule *services.Schedule) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// GetSchedule returns the active cron expression with its next fire time
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	return c.JSON(types.Success(h.schedule.GetConfig()))
}

// UpdateScheduleRequest is the payload for schedule updates
type UpdateScheduleRequest struct {
	Expression string `json:"expression"`
}

// UpdateSchedule validates and hot-swaps the recurring schedule
func (h *ScheduleHandler) UpdateSchedule(c *fiber.Ctx) error {
	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}
	if req.Expression == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("expression is required"))
	}

	cfg, err := h.schedule.UpdateExpression(c.Context(), req.Expression)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}
	return c.JSON(types.Success(cfg))
}

// Suggestions returns the advisory list of common schedules
func (h *ScheduleHandler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(types.Success(h.schedule.SuggestedExpressions()))
}
