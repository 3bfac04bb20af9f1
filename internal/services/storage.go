package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorageService keeps short-lived copies of uploads on disk for tools that
// only read from a path.
type StorageService interface {
	EnsureUploadDir() error
	SaveTemp(data []byte, ext string) (path string, cleanup func(), err error)
}

type storageService struct {
	uploadPath string
	log        *zap.Logger
}

func NewStorageService(uploadPath string, log *zap.Logger) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		log:        log,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveTemp(data []byte, ext string) (string, func(), error) {
	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("upload_%s%s", uuid.New().String(), ext))

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return "", func() {}, fmt.Errorf("failed to write temp file: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove temp file", zap.String("path", filePath), zap.Error(err))
		}
	}

	return filePath, cleanup, nil
}
