package models

type Application struct {
	BaseModel
	UserID      string `gorm:"not null;index" json:"userId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	RepoURL     string `json:"repoUrl"`
	LiveURL     string `json:"liveUrl"`
	Published   bool   `gorm:"default:true" json:"published"`

	// 1-based position within the owning user's list. Dense: after any
	// insert, move or delete the values for one user are 1..N.
	DisplayOrder int `gorm:"not null;index" json:"displayOrder"`

	// Image filenames managed by imagestorage; the entity only holds
	// the references, the path scheme locates the bytes.
	ProfileImage string   `json:"profileImage"`
	Images       []string `gorm:"serializer:json" json:"images"`

	Technologies []Technology `gorm:"many2many:application_technologies" json:"technologies,omitempty"`
}
