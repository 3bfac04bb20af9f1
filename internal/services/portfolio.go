package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
)

type PortfolioService interface {
	Import(ctx context.Context, doc *models.UploadedDocument, promptOverride string) (*models.PortfolioImport, error)
	Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error)
}

type portfolioService struct {
	extractor  TextExtractor
	classifier ClassifierService
	index      PortfolioIndex
	chunker    TextChunker
	chunkSize  int
	timeout    time.Duration
	log        *zap.Logger
}

// NewPortfolioService wires the import pipeline. index may be nil, in which
// case imports are not indexed and Search returns ErrIndexDisabled.
func NewPortfolioService(
	extractor TextExtractor,
	classifier ClassifierService,
	index PortfolioIndex,
	chunker TextChunker,
	chunkSize int,
	timeout time.Duration,
	log *zap.Logger,
) PortfolioService {
	return &portfolioService{
		extractor:  extractor,
		classifier: classifier,
		index:      index,
		chunker:    chunker,
		chunkSize:  chunkSize,
		timeout:    timeout,
		log:        log,
	}
}

func (p *portfolioService) Import(ctx context.Context, doc *models.UploadedDocument, promptOverride string) (*models.PortfolioImport, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	extraction, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	classification, err := p.classifier.Classify(ctx, extraction.Text, promptOverride)
	if err != nil {
		return nil, err
	}

	result := &models.PortfolioImport{
		Metadata:       extraction.Metadata,
		Classification: classification,
	}

	if p.index != nil {
		docID := uuid.New().String()
		chunks := p.chunker.ChunkText(extraction.Text, p.chunkSize)
		if err := p.index.IndexDocument(ctx, docID, doc.Filename, chunks); err != nil {
			p.log.Warn("failed to index portfolio", zap.String("filename", doc.Filename), zap.Error(err))
		} else {
			result.Indexed = true
		}
	}

	return result, nil
}

func (p *portfolioService) Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error) {
	if p.index == nil {
		return nil, ErrIndexDisabled
	}
	return p.index.Search(ctx, query, limit)
}
