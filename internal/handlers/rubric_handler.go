package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/repositories"
	"skillmap/portfolio-api/internal/services"
)

type RubricHandler struct {
	repo     repositories.RubricRepository
	exporter services.ExporterService
}

func NewRubricHandler(repo repositories.RubricRepository, exporter services.ExporterService) *RubricHandler {
	return &RubricHandler{
		repo:     repo,
		exporter: exporter,
	}
}

// HandleCreate handles POST /rubric/
func (h *RubricHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateRubricRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	rubric := &models.RubricScore{Name: req.Name}
	if req.CreatedAt != nil {
		rubric.CreatedAt = *req.CreatedAt
	}
	if req.UpdatedAt != nil {
		rubric.UpdatedAt = *req.UpdatedAt
	}

	if err := h.repo.Create(rubric); err != nil {
		return internalError(c, err)
	}

	return c.JSON(rubric)
}

// HandleList handles GET /rubric/
func (h *RubricHandler) HandleList(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, err)
	}

	rubrics, err := h.repo.List(page)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(rubrics)
}

// HandleGet handles GET /rubric/:id
func (h *RubricHandler) HandleGet(c *fiber.Ctx) error {
	rubric, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(rubric)
}

// HandleDelete handles DELETE /rubric/:id
func (h *RubricHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Rubric not found",
			})
		}
		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleExport handles GET /rubric/:id/export
func (h *RubricHandler) HandleExport(c *fiber.Ctx) error {
	rubric, err := h.load(c)
	if err != nil {
		return err
	}

	data, err := h.exporter.ExportRubric(rubric)
	if err != nil {
		return internalError(c, err)
	}

	return sendWorkbook(c, fmt.Sprintf("rubric_%d.xlsx", rubric.ID), data)
}

// load returns *fiber.Error values that the app error handler renders.
func (h *RubricHandler) load(c *fiber.Ctx) (*models.RubricScore, error) {
	id, err := paramID(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rubric, err := h.repo.FindDetail(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Rubric not found")
		}
		return nil, err
	}
	return rubric, nil
}
