package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skillmap/portfolio-api/internal/models"
)

type RubricRepository interface {
	Create(rubric *models.RubricScore) error
	List(page Page) ([]models.RubricScore, error)
	Exists(id uint) (bool, error)
	FindByID(id uint) (*models.RubricScore, error)
	FindDetail(id uint) (*models.RubricScore, error)
	Delete(id uint) error
}

type rubricRepository struct {
	db *gorm.DB
}

func NewRubricRepository(db *gorm.DB) RubricRepository {
	return &rubricRepository{db: db}
}

func (r *rubricRepository) Create(rubric *models.RubricScore) error {
	if err := r.db.Create(rubric).Error; err != nil {
		return fmt.Errorf("failed to create rubric: %w", err)
	}
	return nil
}

func (r *rubricRepository) List(page Page) ([]models.RubricScore, error) {
	page = page.Normalize()

	rubrics := []models.RubricScore{}
	if err := r.db.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&rubrics).Error; err != nil {
		return nil, fmt.Errorf("failed to list rubrics: %w", err)
	}
	return rubrics, nil
}

func (r *rubricRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.RubricScore{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check rubric: %w", err)
	}
	return count > 0, nil
}

func (r *rubricRepository) FindByID(id uint) (*models.RubricScore, error) {
	var rubric models.RubricScore
	if err := r.db.Where("id = ?", id).First(&rubric).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rubric %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find rubric: %w", err)
	}
	return &rubric, nil
}

// FindDetail loads a rubric with its skills (and their criteria) and levels,
// ordered the way the rubric grid is drawn.
func (r *rubricRepository) FindDetail(id uint) (*models.RubricScore, error) {
	var rubric models.RubricScore
	err := r.db.
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Skills.Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&rubric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rubric %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load rubric: %w", err)
	}
	return &rubric, nil
}

// Delete removes the rubric together with its skills, levels and criteria.
func (r *rubricRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.RubricScore{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete rubric: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("rubric %d: %w", id, ErrNotFound)
		}

		skillIDs := tx.Model(&models.Skill{}).Select("id").Where("rubric_id = ?", id)
		levelIDs := tx.Model(&models.Level{}).Select("id").Where("rubric_id = ?", id)

		if err := tx.Where("skill_id IN (?) OR level_id IN (?)", skillIDs, levelIDs).
			Delete(&models.Criteria{}).Error; err != nil {
			return fmt.Errorf("failed to delete criteria: %w", err)
		}
		if err := tx.Where("rubric_id = ?", id).Delete(&models.Skill{}).Error; err != nil {
			return fmt.Errorf("failed to delete skills: %w", err)
		}
		if err := tx.Where("rubric_id = ?", id).Delete(&models.Level{}).Error; err != nil {
			return fmt.Errorf("failed to delete levels: %w", err)
		}
		return nil
	})
}
