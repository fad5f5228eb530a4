package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"fullName" validate:"omitempty,max=100"`
	Headline    *string `json:"headline" validate:"omitempty,max=200"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	GithubURL   *string `json:"githubUrl" validate:"omitempty,url"`
	LinkedinURL *string `json:"linkedinUrl" validate:"omitempty,url"`
	WebsiteURL  *string `json:"websiteUrl" validate:"omitempty,url"`
}
