package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/repositories"
	"skillmap/portfolio-api/internal/services"
)

type SkillMapHandler struct {
	repo     repositories.SkillMapRepository
	exporter services.ExporterService
}

func NewSkillMapHandler(repo repositories.SkillMapRepository, exporter services.ExporterService) *SkillMapHandler {
	return &SkillMapHandler{
		repo:     repo,
		exporter: exporter,
	}
}

// HandleCreate handles POST /map/
func (h *SkillMapHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateSkillMapRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	skillMap := &models.SkillMap{
		Skills:      req.Skills,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := h.repo.Create(skillMap); err != nil {
		return internalError(c, err)
	}

	return c.JSON(skillMap)
}

// HandleList handles GET /map/
func (h *SkillMapHandler) HandleList(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, err)
	}

	maps, err := h.repo.List(page)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(maps)
}

// HandleExport handles GET /map/export
func (h *SkillMapHandler) HandleExport(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, err)
	}

	maps, err := h.repo.List(page)
	if err != nil {
		return internalError(c, err)
	}

	data, err := h.exporter.ExportSkillMaps(maps)
	if err != nil {
		return internalError(c, err)
	}

	return sendWorkbook(c, "skill_maps_"+time.Now().Format("20060102_150405")+".xlsx", data)
}
