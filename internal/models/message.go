package models

type Message struct {
	BaseModel
	SenderName  string `gorm:"not null" json:"senderName"`
	SenderEmail string `gorm:"not null" json:"senderEmail"`
	Subject     string `json:"subject"`
	Body        string `gorm:"not null" json:"body"`
	Read        bool   `gorm:"default:false;index" json:"read"`
}
