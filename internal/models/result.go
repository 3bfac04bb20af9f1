package models

import "time"

type CreateSkillMapRequest struct {
	Skills      []string `json:"skills" validate:"required,dive,required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required"`
}

type CreateRubricRequest struct {
	Name      string     `json:"name" validate:"required"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CreateSkillRequest struct {
	RubricID     uint   `json:"rubric_id" validate:"required"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type CreateLevelRequest struct {
	RubricID uint   `json:"rubric_id" validate:"required"`
	Name     string `json:"name"`
	Rank     int    `json:"rank" validate:"gte=0"`
}

type CreateCriteriaRequest struct {
	SkillID     uint   `json:"skill_id" validate:"required"`
	LevelID     uint   `json:"level_id" validate:"required"`
	Description string `json:"description"`
}

type ImportResponse struct {
	Success        bool                  `json:"success"`
	Metadata       DocumentMetadata      `json:"metadata"`
	Classification *ClassificationResult `json:"classification"`
	Indexed        bool                  `json:"indexed"`
}

type SearchResponse struct {
	Query   string        `json:"query"`
	Results []SearchMatch `json:"results"`
}

type SearchMatch struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float32 `json:"score"`
	Text       string  `json:"text"`
}
