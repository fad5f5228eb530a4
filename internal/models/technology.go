package models

type Technology struct {
	BaseModel
	UserID   string `gorm:"not null;index" json:"userId"`
	Name     string `gorm:"not null" json:"name"`
	Category string `json:"category"`

	// Same per-user dense ordering contract as Application.
	DisplayOrder int `gorm:"not null;index" json:"displayOrder"`

	ProfileImage    string   `json:"profileImage"`
	ComponentImages []string `gorm:"serializer:json" json:"componentImages"`
}
