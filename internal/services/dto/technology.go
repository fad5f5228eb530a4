package dto

type CreateTechnologyRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Category string `json:"category" form:"category" validate:"omitempty,max=100"`
}

type UpdateTechnologyRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=1"`
}
