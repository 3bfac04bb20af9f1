package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CommandRunner lets tests stub the external rasterizer and OCR binaries.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	log *zap.Logger
}

func NewExecRunner(log *zap.Logger) CommandRunner {
	return &execRunner{log: log}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		r.log.Error("exec failed",
			zap.String("cmd", name),
			zap.Strings("args", args),
			zap.Duration("duration", time.Since(start)),
			zap.String("stderr", truncate(errb.String(), 8<<10)),
			zap.Error(err),
		)
	} else {
		r.log.Debug("exec ok",
			zap.String("cmd", name),
			zap.Duration("duration", time.Since(start)),
			zap.Int("stdout_bytes", out.Len()),
		)
	}

	return out.Bytes(), errb.Bytes(), err
}

type OCRConfig struct {
	Pdftoppm  string
	Tesseract string
	DPI       int
	Lang      string
}

type OCRContent struct {
	Text  string
	Pages int
}

// OCRService recognises text in image-only PDFs.
type OCRService interface {
	RecognizePDF(ctx context.Context, pdfPath string) (*OCRContent, error)
}

type ocrService struct {
	cfg    OCRConfig
	runner CommandRunner
	log    *zap.Logger
}

func NewOCRService(cfg OCRConfig, runner CommandRunner, log *zap.Logger) OCRService {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	return &ocrService{cfg: cfg, runner: runner, log: log}
}

// RecognizePDF rasterizes every page and runs OCR on each page image on its
// own. Page texts are joined with a blank line.
func (o *ocrService) RecognizePDF(ctx context.Context, pdfPath string) (*OCRContent, error) {
	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR workspace: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			o.log.Warn("failed to remove OCR workspace", zap.String("path", tmpDir), zap.Error(err))
		}
	}()

	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	prefix := filepath.Join(tmpDir, "page")
	if _, stderr, err := o.runner.Run(ctx, o.cfg.Pdftoppm, "-r", strconv.Itoa(o.cfg.DPI), "-png", pdfPath, prefix); err != nil {
		return nil, fmt.Errorf("rasterize failed: %w: %s", err, truncate(string(stderr), 512))
	}

	// pdftoppm zero-pads page numbers, so a lexical sort is page order
	images, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(images)
	if len(images) == 0 {
		return nil, fmt.Errorf("rasterize produced no page images")
	}

	texts := make([]string, 0, len(images))
	failed := 0
	for _, img := range images {
		out, stderr, err := o.runner.Run(ctx, o.cfg.Tesseract, img, "stdout", "-l", o.cfg.Lang)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failed++
			o.log.Warn("page OCR failed",
				zap.String("image", filepath.Base(img)),
				zap.String("stderr", truncate(string(stderr), 512)),
				zap.Error(err),
			)
			texts = append(texts, "")
			continue
		}
		texts = append(texts, strings.TrimSpace(string(out)))
	}

	if failed == len(images) {
		return nil, fmt.Errorf("OCR failed on all %d pages", len(images))
	}

	return &OCRContent{
		Text:  strings.TrimSpace(strings.Join(texts, "\n\n")),
		Pages: len(images),
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
