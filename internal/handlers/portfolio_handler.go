package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/services"
)

type PortfolioHandler struct {
	portfolio   services.PortfolioService
	maxFileSize int64
	log         *zap.Logger
}

func NewPortfolioHandler(
	portfolio services.PortfolioService,
	maxFileSize int64,
	log *zap.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolio:   portfolio,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// HandleImport handles POST /portfolio/import
func (h *PortfolioHandler) HandleImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	// One byte over the limit is enough for the extractor to reject it
	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	if len(data) > 0 && !mimetype.Detect(data).Is("application/pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Uploaded file is not a PDF document",
		})
	}

	doc := &models.UploadedDocument{
		Filename: fileHeader.Filename,
		Data:     data,
	}

	result, err := h.portfolio.Import(c.UserContext(), doc, c.FormValue("prompt"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		h.log.Error("portfolio import failed", zap.String("filename", doc.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.ImportResponse{
		Success:        true,
		Metadata:       result.Metadata,
		Classification: result.Classification,
		Indexed:        result.Indexed,
	})
}

// HandleSearch handles GET /portfolio/search
func (h *PortfolioHandler) HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	limit, err := queryInt(c, "limit", 5)
	if err != nil {
		return badRequest(c, err)
	}

	matches, err := h.portfolio.Search(c.UserContext(), query, limit)
	if err != nil {
		if errors.Is(err, services.ErrIndexDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(models.SearchResponse{
		Query:   query,
		Results: matches,
	})
}
