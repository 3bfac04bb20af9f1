package handlers

import (
	"github.com/gofiber/fiber/v2"

	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/repositories"
)

type LevelHandler struct {
	repo repositories.LevelRepository
}

func NewLevelHandler(repo repositories.LevelRepository) *LevelHandler {
	return &LevelHandler{repo: repo}
}

// HandleCreate handles POST /level/
func (h *LevelHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateLevelRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	level := &models.Level{
		RubricID: req.RubricID,
		Name:     req.Name,
		Rank:     req.Rank,
	}
	if err := h.repo.Create(level); err != nil {
		return internalError(c, err)
	}

	return c.JSON(level)
}

// HandleList handles GET /level/
func (h *LevelHandler) HandleList(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, err)
	}

	levels, err := h.repo.List(page)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(levels)
}
