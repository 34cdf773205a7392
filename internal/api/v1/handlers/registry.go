package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jobradar/jobradar/internal/db"
	"github.com/jobradar/jobradar/internal/db/models"
	"github.com/jobradar/jobradar/internal/db/repos"
	"github.com/jobradar/jobradar/internal/services"
	"github.com/jobradar/jobradar/internal/types"
)

// RegistryHandler handles HTTP requests for job boards, companies and pairs
type RegistryHandler struct {
	registry *services.Registry
}

// NewRegistryHandler creates a new registry handler instance
func NewRegistryHandler(registry *services.Registry) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

// --- Job boards ---

// ListBoards returns all configured job boards
func (h *RegistryHandler) ListBoards(c *fiber.Ctx) error {
	boards, err := h.registry.ListBoards(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(types.ListResponse[models.JobBoard]{
		Rows:  boards,
		Total: len(boards),
	}))
}

// GetBoard returns one job board by slug
func (h *RegistryHandler) GetBoard(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("slug is required"))
	}

	board, err := h.registry.GetBoard(c.Context(), slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound(err.Error()))
	}
	return c.JSON(types.Success(board))
}

// CreateBoard creates a job board
func (h *RegistryHandler) CreateBoard(c *fiber.Ctx) error {
	var board models.JobBoard
	if err := c.BodyParser(&board); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}

	if err := h.registry.CreateBoard(c.Context(), &board); err != nil {
		if db.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).
				JSON(types.ErrConflict("job board already exists"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(types.Success(board))
}

// UpdateBoard updates a job board
func (h *RegistryHandler) UpdateBoard(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid job board ID"))
	}

	var board models.JobBoard
	if err := c.BodyParser(&board); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}

	if err := h.registry.UpdateBoard(c.Context(), uint(id), &board); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound("job board not found"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(board))
}

// DeleteBoard removes a job board and its pair links
func (h *RegistryHandler) DeleteBoard(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid job board ID"))
	}

	if err := h.registry.DeleteBoard(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(nil))
}

// --- Companies ---

// ListCompanies returns companies ordered by featured rank then name
func (h *RegistryHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.registry.ListCompanies(c.Context(), getPaginationOptions(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(types.ListResponse[models.Company]{
		Rows:  companies,
		Total: len(companies),
	}))
}

// GetCompany returns one company by ID
func (h *RegistryHandler) GetCompany(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid company ID"))
	}

	company, err := h.registry.GetCompany(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound(err.Error()))
	}
	return c.JSON(types.Success(company))
}

// CreateCompany creates a company
func (h *RegistryHandler) CreateCompany(c *fiber.Ctx) error {
	var company models.Company
	if err := c.BodyParser(&company); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}

	if err := h.registry.CreateCompany(c.Context(), &company); err != nil {
		if db.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).
				JSON(types.ErrConflict("company already exists"))
		}
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(types.Success(company))
}

// UpdateCompany updates a company
func (h *RegistryHandler) UpdateCompany(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid company ID"))
	}

	var company models.Company
	if err := c.BodyParser(&company); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}

	if err := h.registry.UpdateCompany(c.Context(), uint(id), &company); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound("company not found"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(company))
}

// DeleteCompany removes a company, keeping its historical jobs orphaned
func (h *RegistryHandler) DeleteCompany(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid company ID"))
	}

	if err := h.registry.DeleteCompany(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(nil))
}

// --- Pairs ---

// ListPairs returns all configured pairs with board and company preloaded
func (h *RegistryHandler) ListPairs(c *fiber.Ctx) error {
	pairs, err := h.registry.ListPairs(c.Context(), getPaginationOptions(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(types.ListResponse[models.JobBoardCompany]{
		Rows:  pairs,
		Total: len(pairs),
	}))
}

// CreatePair creates one scrape pair
func (h *RegistryHandler) CreatePair(c *fiber.Ctx) error {
	var pair models.JobBoardCompany
	if err := c.BodyParser(&pair); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}

	if err := h.registry.CreatePair(c.Context(), &pair); err != nil {
		if errors.Is(err, repos.ErrPairExists) {
			return c.Status(fiber.StatusConflict).
				JSON(types.ErrConflict(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(types.Success(pair))
}

// CreatePairsRequest is the payload for bulk pair creation
type CreatePairsRequest struct {
	Pairs []*models.JobBoardCompany `json:"pairs"`
}

// CreatePairs bulk-creates pairs; duplicates are reported per item, not fatal
func (h *RegistryHandler) CreatePairs(c *fiber.Ctx) error {
	var req CreatePairsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}
	if len(req.Pairs) == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("pairs are required"))
	}

	results := h.registry.CreatePairs(c.Context(), req.Pairs)
	return c.Status(fiber.StatusMultiStatus).JSON(types.Success(results))
}

// UpdatePair updates a pair's configuration
func (h *RegistryHandler) UpdatePair(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid pair ID"))
	}

	var pair models.JobBoardCompany
	if err := c.BodyParser(&pair); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid request body"))
	}

	if err := h.registry.UpdatePair(c.Context(), uint(id), &pair); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound("pair not found"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(pair))
}

// DeletePair removes a pair
func (h *RegistryHandler) DeletePair(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid pair ID"))
	}

	if err := h.registry.DeletePair(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(nil))
}

// TogglePair flips a pair's enabled flag
func (h *RegistryHandler) TogglePair(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid pair ID"))
	}

	enabled, err := h.registry.TogglePair(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound("pair not found"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(fiber.Map{"id": id, "enabled": enabled}))
}
