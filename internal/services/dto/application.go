package dto

type CreateApplicationRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description"`
	RepoURL     string `json:"repoUrl" form:"repoUrl" validate:"omitempty,url"`
	LiveURL     string `json:"liveUrl" form:"liveUrl" validate:"omitempty,url"`
	Published   *bool  `json:"published" form:"published"`
}

type UpdateApplicationRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	RepoURL     *string `json:"repoUrl" validate:"omitempty,url"`
	LiveURL     *string `json:"liveUrl" validate:"omitempty,url"`
	Published   *bool   `json:"published"`

	// Target position in the user's list; triggers a reorder when it
	// differs from the current position.
	DisplayOrder *int `json:"displayOrder" validate:"omitempty,min=1"`
}

type SetTechnologiesRequest struct {
	TechnologyIDs []string `json:"technologyIds" validate:"required"`
}
