package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
)

type ExtractorConfig struct {
	MaxFileSize   int64
	MinTextLength int
}

// TextExtractor turns PDF bytes into plain text, falling back to OCR when the
// embedded text layer is missing or too thin.
type TextExtractor interface {
	Extract(ctx context.Context, doc *models.UploadedDocument) (*models.ExtractionResult, error)
}

type textExtractor struct {
	cfg     ExtractorConfig
	parser  PDFParserService
	ocr     OCRService
	storage StorageService
	pool    WorkerPool
	log     *zap.Logger
}

func NewTextExtractor(
	cfg ExtractorConfig,
	parser PDFParserService,
	ocr OCRService,
	storage StorageService,
	pool WorkerPool,
	log *zap.Logger,
) TextExtractor {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 << 20
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 100
	}
	return &textExtractor{
		cfg:     cfg,
		parser:  parser,
		ocr:     ocr,
		storage: storage,
		pool:    pool,
		log:     log,
	}
}

func (e *textExtractor) Extract(ctx context.Context, doc *models.UploadedDocument) (*models.ExtractionResult, error) {
	size := doc.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrValidation)
	}
	if size > e.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: file size (%d bytes) exceeds maximum allowed size (%d bytes)",
			ErrValidation, size, e.cfg.MaxFileSize)
	}

	log := e.log.With(zap.String("filename", doc.Filename), zap.Int64("size", size))
	log.Info("extracting text")

	text := ""
	pages := 0
	method := models.MethodStructured

	content, err := e.parser.ExtractText(doc.Data)
	if err != nil {
		log.Warn("structured extraction failed", zap.Error(err))
	} else {
		text = content.Text
		pages = content.PageCount
	}

	textLen := utf8.RuneCountInString(text)
	if textLen < e.cfg.MinTextLength {
		log.Info("low-quality text detected; running OCR fallback",
			zap.Int("chars", textLen), zap.Int("threshold", e.cfg.MinTextLength))

		ocrContent, err := e.recognize(ctx, doc)
		switch {
		case err != nil && text == "":
			return nil, fmt.Errorf("%w: failed to extract text from PDF: %w", ErrExtraction, err)
		case err != nil:
			log.Warn("OCR fallback failed; keeping structured text", zap.Error(err))
		case utf8.RuneCountInString(ocrContent.Text) > textLen:
			text = ocrContent.Text
			method = models.MethodOCR
			pages = ocrContent.Pages
		}
	}

	if text == "" {
		return nil, fmt.Errorf("%w: failed to extract text from PDF", ErrExtraction)
	}

	log.Info("text extracted", zap.String("method", string(method)), zap.Int("chars", utf8.RuneCountInString(text)))

	return &models.ExtractionResult{
		Text: text,
		Metadata: models.DocumentMetadata{
			Filename: doc.Filename,
			Size:     size,
			Method:   method,
			Pages:    pages,
		},
	}, nil
}

func (e *textExtractor) recognize(ctx context.Context, doc *models.UploadedDocument) (*OCRContent, error) {
	path, cleanup, err := e.storage.SaveTemp(doc.Data, ".pdf")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var content *OCRContent
	err = e.pool.Do(ctx, func(ctx context.Context) error {
		var err error
		content, err = e.ocr.RecognizePDF(ctx, path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}
