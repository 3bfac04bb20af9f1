package handlers

import (
	"github.com/gofiber/fiber/v2"

	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/repositories"
)

type CriteriaHandler struct {
	repo repositories.CriteriaRepository
}

func NewCriteriaHandler(repo repositories.CriteriaRepository) *CriteriaHandler {
	return &CriteriaHandler{repo: repo}
}

// HandleCreate handles POST /criteria/
func (h *CriteriaHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateCriteriaRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	criteria := &models.Criteria{
		SkillID:     req.SkillID,
		LevelID:     req.LevelID,
		Description: req.Description,
	}
	if err := h.repo.Create(criteria); err != nil {
		return internalError(c, err)
	}

	return c.JSON(criteria)
}

// HandleList handles GET /criteria/
func (h *CriteriaHandler) HandleList(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, err)
	}

	criteria, err := h.repo.List(page)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(criteria)
}
