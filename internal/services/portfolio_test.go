package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
)

type stubExtractor struct {
	result *models.ExtractionResult
	err    error
}

func (s *stubExtractor) Extract(context.Context, *models.UploadedDocument) (*models.ExtractionResult, error) {
	return s.result, s.err
}

type stubClassifier struct {
	result   *models.ClassificationResult
	err      error
	override string
	text     string
}

func (s *stubClassifier) Classify(_ context.Context, text, override string) (*models.ClassificationResult, error) {
	s.text, s.override = text, override
	return s.result, s.err
}

type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) InitCollection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockIndex) IndexDocument(ctx context.Context, docID, filename string, chunks []string) error {
	return m.Called(ctx, docID, filename, chunks).Error(0)
}

func (m *MockIndex) Search(ctx context.Context, query string, limit int) ([]models.SearchMatch, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchMatch), args.Error(1)
}

func extraction(text string) *models.ExtractionResult {
	return &models.ExtractionResult{
		Text:     text,
		Metadata: models.DocumentMetadata{Filename: "cv.pdf", Size: 10, Method: models.MethodStructured, Pages: 1},
	}
}

func TestPortfolioImport_WithoutIndex(t *testing.T) {
	classifier := &stubClassifier{result: &models.ClassificationResult{Skills: []string{"Go"}}}
	svc := NewPortfolioService(&stubExtractor{result: extraction("I write Go")}, classifier, nil, NewTextChunker(), 3000, 0, zap.NewNop())

	result, err := svc.Import(context.Background(), testDoc(10), "custom")
	require.NoError(t, err)

	assert.Equal(t, "I write Go", classifier.text)
	assert.Equal(t, "custom", classifier.override)
	assert.Equal(t, []string{"Go"}, result.Classification.Skills)
	assert.Equal(t, "cv.pdf", result.Metadata.Filename)
	assert.False(t, result.Indexed)

	_, err = svc.Search(context.Background(), "go", 5)
	assert.ErrorIs(t, err, ErrIndexDisabled)
}

func TestPortfolioImport_Indexes(t *testing.T) {
	index := new(MockIndex)
	index.On("IndexDocument", mock.Anything, mock.AnythingOfType("string"), "cv.pdf", []string{"abcd", "ef"}).Return(nil)

	svc := NewPortfolioService(
		&stubExtractor{result: extraction("abcdef")},
		&stubClassifier{result: MergeChunkOutcomes(nil)},
		index,
		NewTextChunker(),
		4,
		0,
		zap.NewNop(),
	)

	result, err := svc.Import(context.Background(), testDoc(10), "")
	require.NoError(t, err)
	assert.True(t, result.Indexed)
	index.AssertExpectations(t)
}

func TestPortfolioImport_IndexFailureIsNotFatal(t *testing.T) {
	index := new(MockIndex)
	index.On("IndexDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("qdrant down"))

	svc := NewPortfolioService(
		&stubExtractor{result: extraction("text")},
		&stubClassifier{result: MergeChunkOutcomes(nil)},
		index,
		NewTextChunker(),
		3000,
		0,
		zap.NewNop(),
	)

	result, err := svc.Import(context.Background(), testDoc(10), "")
	require.NoError(t, err)
	assert.False(t, result.Indexed)
}

func TestPortfolioImport_PropagatesErrors(t *testing.T) {
	t.Run("extraction", func(t *testing.T) {
		classifier := &stubClassifier{}
		svc := NewPortfolioService(&stubExtractor{err: ErrExtraction}, classifier, nil, NewTextChunker(), 3000, 0, zap.NewNop())

		_, err := svc.Import(context.Background(), testDoc(10), "")
		assert.ErrorIs(t, err, ErrExtraction)
		assert.Empty(t, classifier.text)
	})

	t.Run("classification", func(t *testing.T) {
		svc := NewPortfolioService(
			&stubExtractor{result: extraction("text")},
			&stubClassifier{err: ErrClassification},
			nil,
			NewTextChunker(),
			3000,
			0,
			zap.NewNop(),
		)

		_, err := svc.Import(context.Background(), testDoc(10), "")
		assert.ErrorIs(t, err, ErrClassification)
	})
}

func TestPortfolioSearch(t *testing.T) {
	index := new(MockIndex)
	matches := []models.SearchMatch{{DocumentID: "d1", Filename: "cv.pdf", Score: 0.9, Text: "Go"}}
	index.On("Search", mock.Anything, "golang", 3).Return(matches, nil)

	svc := NewPortfolioService(&stubExtractor{}, &stubClassifier{}, index, NewTextChunker(), 3000, 0, zap.NewNop())

	got, err := svc.Search(context.Background(), "golang", 3)
	require.NoError(t, err)
	assert.Equal(t, matches, got)
}
