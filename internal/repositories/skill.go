package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"skillmap/portfolio-api/internal/models"
)

type SkillRepository interface {
	Create(skill *models.Skill) error
	List(page Page) ([]models.Skill, error)
}

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(skill *models.Skill) error {
	if err := r.db.Create(skill).Error; err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	return nil
}

func (r *skillRepository) List(page Page) ([]models.Skill, error) {
	page = page.Normalize()

	skills := []models.Skill{}
	if err := r.db.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}
