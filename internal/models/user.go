package models

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"default:'admin'" json:"role"`
	FullName     string   `json:"fullName"`
	Headline     string   `json:"headline"`
	Bio          string   `json:"bio"`
	Location     string   `json:"location"`
	GithubURL    string   `json:"githubUrl"`
	LinkedinURL  string   `json:"linkedinUrl"`
	WebsiteURL   string   `json:"websiteUrl"`

	// Filename of the profile image on disk, managed by imagestorage.
	ProfileImage string `json:"profileImage"`
}
