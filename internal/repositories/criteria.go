package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"skillmap/portfolio-api/internal/models"
)

type CriteriaRepository interface {
	Create(criteria *models.Criteria) error
	List(page Page) ([]models.Criteria, error)
}

type criteriaRepository struct {
	db *gorm.DB
}

func NewCriteriaRepository(db *gorm.DB) CriteriaRepository {
	return &criteriaRepository{db: db}
}

func (r *criteriaRepository) Create(criteria *models.Criteria) error {
	if err := r.db.Create(criteria).Error; err != nil {
		return fmt.Errorf("failed to create criteria: %w", err)
	}
	return nil
}

func (r *criteriaRepository) List(page Page) ([]models.Criteria, error) {
	page = page.Normalize()

	criteria := []models.Criteria{}
	if err := r.db.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&criteria).Error; err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	return criteria, nil
}
