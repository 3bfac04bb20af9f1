package models

type SkillMap struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Skills      []string `gorm:"serializer:json;type:text" json:"skills"`
	Category    string   `gorm:"type:text" json:"category"`
	Description string   `gorm:"type:text" json:"description"`
	Date        string   `gorm:"type:text" json:"date"`
}

func (SkillMap) TableName() string {
	return "skillmap"
}
