package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
)

type fakeParser struct {
	content *PDFContent
	err     error
}

func (f *fakeParser) ExtractText([]byte) (*PDFContent, error) {
	return f.content, f.err
}

type fakeOCR struct {
	content *OCRContent
	err     error
	called  bool
	sawFile bool
}

func (f *fakeOCR) RecognizePDF(_ context.Context, path string) (*OCRContent, error) {
	f.called = true
	if _, err := os.Stat(path); err == nil {
		f.sawFile = true
	}
	return f.content, f.err
}

func newTestExtractor(t *testing.T, parser PDFParserService, ocr OCRService) TextExtractor {
	t.Helper()
	return NewTextExtractor(
		ExtractorConfig{MaxFileSize: 1024, MinTextLength: 100},
		parser,
		ocr,
		NewStorageService(t.TempDir(), zap.NewNop()),
		startPool(t, 1),
		zap.NewNop(),
	)
}

func testDoc(size int) *models.UploadedDocument {
	return &models.UploadedDocument{Filename: "cv.pdf", Data: make([]byte, size)}
}

func TestExtract_StructuredTextIsKept(t *testing.T) {
	text := strings.Repeat("s", 150)
	ocr := &fakeOCR{}
	extractor := newTestExtractor(t, &fakeParser{content: &PDFContent{Text: text, PageCount: 2}}, ocr)

	result, err := extractor.Extract(context.Background(), testDoc(10))
	require.NoError(t, err)

	assert.False(t, ocr.called)
	assert.Equal(t, text, result.Text)
	assert.Equal(t, models.MethodStructured, result.Metadata.Method)
	assert.Equal(t, 2, result.Metadata.Pages)
	assert.Equal(t, int64(10), result.Metadata.Size)
	assert.Equal(t, "cv.pdf", result.Metadata.Filename)
}

func TestExtract_ThresholdIsStrict(t *testing.T) {
	ocr := &fakeOCR{}
	extractor := newTestExtractor(t, &fakeParser{content: &PDFContent{Text: strings.Repeat("s", 100), PageCount: 1}}, ocr)

	_, err := extractor.Extract(context.Background(), testDoc(10))
	require.NoError(t, err)
	assert.False(t, ocr.called)
}

func TestExtract_OCRReplacesShortText(t *testing.T) {
	ocrText := strings.Repeat("o", 200)
	ocr := &fakeOCR{content: &OCRContent{Text: ocrText, Pages: 3}}
	extractor := newTestExtractor(t, &fakeParser{content: &PDFContent{Text: "short", PageCount: 3}}, ocr)

	result, err := extractor.Extract(context.Background(), testDoc(10))
	require.NoError(t, err)

	assert.True(t, ocr.called)
	assert.True(t, ocr.sawFile)
	assert.Equal(t, ocrText, result.Text)
	assert.Equal(t, models.MethodOCR, result.Metadata.Method)
	assert.Equal(t, 3, result.Metadata.Pages)
}

func TestExtract_LongerStructuredTextWins(t *testing.T) {
	structured := strings.Repeat("s", 50)
	ocr := &fakeOCR{content: &OCRContent{Text: strings.Repeat("o", 20), Pages: 1}}
	extractor := newTestExtractor(t, &fakeParser{content: &PDFContent{Text: structured, PageCount: 1}}, ocr)

	result, err := extractor.Extract(context.Background(), testDoc(10))
	require.NoError(t, err)

	assert.True(t, ocr.called)
	assert.Equal(t, structured, result.Text)
	assert.Equal(t, models.MethodStructured, result.Metadata.Method)
}

func TestExtract_OCRFailureKeepsStructuredText(t *testing.T) {
	ocr := &fakeOCR{err: errors.New("tesseract missing")}
	extractor := newTestExtractor(t, &fakeParser{content: &PDFContent{Text: "some text", PageCount: 1}}, ocr)

	result, err := extractor.Extract(context.Background(), testDoc(10))
	require.NoError(t, err)
	assert.Equal(t, "some text", result.Text)
}

func TestExtract_NoTextAnywhere(t *testing.T) {
	t.Run("parser and OCR fail", func(t *testing.T) {
		extractor := newTestExtractor(t,
			&fakeParser{err: errors.New("not a pdf")},
			&fakeOCR{err: errors.New("rasterize failed")},
		)

		_, err := extractor.Extract(context.Background(), testDoc(10))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrExtraction))
	})

	t.Run("OCR finds nothing", func(t *testing.T) {
		extractor := newTestExtractor(t,
			&fakeParser{content: &PDFContent{PageCount: 1}},
			&fakeOCR{content: &OCRContent{Pages: 1}},
		)

		_, err := extractor.Extract(context.Background(), testDoc(10))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrExtraction))
	})
}

func TestExtract_Validation(t *testing.T) {
	ocr := &fakeOCR{}
	extractor := newTestExtractor(t, &fakeParser{content: &PDFContent{Text: strings.Repeat("s", 150)}}, ocr)

	_, err := extractor.Extract(context.Background(), testDoc(0))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = extractor.Extract(context.Background(), testDoc(1025))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = extractor.Extract(context.Background(), testDoc(1024))
	assert.NoError(t, err)
	assert.False(t, ocr.called)
}
