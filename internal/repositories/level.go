package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"skillmap/portfolio-api/internal/models"
)

type LevelRepository interface {
	Create(level *models.Level) error
	List(page Page) ([]models.Level, error)
}

type levelRepository struct {
	db *gorm.DB
}

func NewLevelRepository(db *gorm.DB) LevelRepository {
	return &levelRepository{db: db}
}

func (r *levelRepository) Create(level *models.Level) error {
	if err := r.db.Create(level).Error; err != nil {
		return fmt.Errorf("failed to create level: %w", err)
	}
	return nil
}

func (r *levelRepository) List(page Page) ([]models.Level, error) {
	page = page.Normalize()

	levels := []models.Level{}
	if err := r.db.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&levels).Error; err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}
