package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/repositories"
)

type SkillHandler struct {
	skillRepo  repositories.SkillRepository
	rubricRepo repositories.RubricRepository
}

func NewSkillHandler(skillRepo repositories.SkillRepository, rubricRepo repositories.RubricRepository) *SkillHandler {
	return &SkillHandler{
		skillRepo:  skillRepo,
		rubricRepo: rubricRepo,
	}
}

// HandleCreate handles POST /skill/. The referenced rubric must exist.
func (h *SkillHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateSkillRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	exists, err := h.rubricRepo.Exists(req.RubricID)
	if err != nil {
		return internalError(c, err)
	}
	if !exists {
		return badRequest(c, fmt.Errorf("rubric %d does not exist", req.RubricID))
	}

	skill := &models.Skill{
		RubricID:     req.RubricID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.skillRepo.Create(skill); err != nil {
		return internalError(c, err)
	}

	return c.JSON(skill)
}

// HandleList handles GET /skill/
func (h *SkillHandler) HandleList(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, err)
	}

	skills, err := h.skillRepo.List(page)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(skills)
}
