package models

import "time"

type RubricScore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Skills []Skill `gorm:"foreignKey:RubricID" json:"skills,omitempty"`
	Levels []Level `gorm:"foreignKey:RubricID" json:"levels,omitempty"`
}

func (RubricScore) TableName() string {
	return "rubric_scores"
}

type Skill struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RubricID     uint   `gorm:"index;not null" json:"rubric_id"`
	Name         string `gorm:"type:text" json:"name,omitempty"`
	DisplayOrder int    `json:"display_order"`

	Criteria []Criteria `gorm:"foreignKey:SkillID" json:"criteria,omitempty"`
}

func (Skill) TableName() string {
	return "skills"
}

type Level struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RubricID uint   `gorm:"index;not null" json:"rubric_id"`
	Name     string `gorm:"type:text" json:"name,omitempty"`
	Rank     int    `json:"rank"`
}

func (Level) TableName() string {
	return "levels"
}

type Criteria struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SkillID     uint   `gorm:"index;not null" json:"skill_id"`
	LevelID     uint   `gorm:"index;not null" json:"level_id"`
	Description string `gorm:"type:text" json:"description"`
}

func (Criteria) TableName() string {
	return "criteria"
}
