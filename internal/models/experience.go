package models

import "time"

type ExperienceKind string

const (
	ExperienceKindWork        ExperienceKind = "work"
	ExperienceKindEducation   ExperienceKind = "education"
	ExperienceKindCertificate ExperienceKind = "certificate"
)

type Experience struct {
	BaseModel
	UserID       string         `gorm:"not null;index" json:"userId"`
	Kind         ExperienceKind `gorm:"not null;index" json:"kind"`
	Title        string         `gorm:"not null" json:"title"`
	Organization string         `json:"organization"`
	Description  string         `json:"description"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      *time.Time     `json:"endDate,omitempty"`

	// Certificate scan or diploma image, if any.
	CertificateImage string `json:"certificateImage"`
}
