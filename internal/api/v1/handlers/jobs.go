package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/services"
	"github.com/jobradar/jobradar/internal/types"
)

// JobHandler handles HTTP requests for the job listing read path
type JobHandler struct {
	jobs *services.Jobs
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(jobs *services.Jobs) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// ListJobs handles the request to list jobs with filters and pagination
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	filter := &models.JobFilter{
		Platform:   c.Query("platform"),
		ActiveOnly: c.QueryBool("active_only", true),
	}

	if remoteStr := c.Query("remote"); remoteStr != "" {
		remote := remoteStr == "true" || remoteStr == "1"
		filter.Remote = &remote
	}
	if seniorityStr := c.Query("seniority"); seniorityStr != "" {
		seniority, err := models.ParseSeniority(seniorityStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(types.ErrInvalidInput(err.Error()))
		}
		filter.Seniority = &seniority
	}
	if typeStr := c.Query("employment_type"); typeStr != "" {
		employment, err := models.ParseEmploymentType(typeStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(types.ErrInvalidInput(err.Error()))
		}
		filter.EmploymentType = &employment
	}

	jobs, total, err := h.jobs.List(c.Context(), filter, getPaginationOptions(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}

	return c.JSON(types.Success(types.ListResponse[models.Job]{
		Rows:  jobs,
		Total: int(total),
	}))
}

// GetJob handles the request to get one job by its natural key
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	platform := c.Params("platform")
	externalID := c.Params("externalId")
	if platform == "" || externalID == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("platform and external id are required"))
	}

	job, err := h.jobs.Get(c.Context(), externalID, platform)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound(err.Error()))
	}
	return c.JSON(types.Success(job))
}
