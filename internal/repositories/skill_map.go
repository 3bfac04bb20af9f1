package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"skillmap/portfolio-api/internal/models"
)

type SkillMapRepository interface {
	Create(skillMap *models.SkillMap) error
	List(page Page) ([]models.SkillMap, error)
}

type skillMapRepository struct {
	db *gorm.DB
}

func NewSkillMapRepository(db *gorm.DB) SkillMapRepository {
	return &skillMapRepository{db: db}
}

func (r *skillMapRepository) Create(skillMap *models.SkillMap) error {
	if err := r.db.Create(skillMap).Error; err != nil {
		return fmt.Errorf("failed to create skill map: %w", err)
	}
	return nil
}

func (r *skillMapRepository) List(page Page) ([]models.SkillMap, error) {
	page = page.Normalize()

	maps := []models.SkillMap{}
	if err := r.db.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&maps).Error; err != nil {
		return nil, fmt.Errorf("failed to list skill maps: %w", err)
	}
	return maps, nil
}
