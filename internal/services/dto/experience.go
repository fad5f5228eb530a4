package dto

import "time"

type CreateExperienceRequest struct {
	Kind         string     `json:"kind" form:"kind" validate:"required,oneof=work education certificate"`
	Title        string     `json:"title" form:"title" validate:"required,max=200"`
	Organization string     `json:"organization" form:"organization" validate:"omitempty,max=200"`
	Description  string     `json:"description" form:"description"`
	StartDate    time.Time  `json:"startDate" form:"startDate" time_format:"2006-01-02" validate:"required"`
	EndDate      *time.Time `json:"endDate" form:"endDate" time_format:"2006-01-02"`
}

type UpdateExperienceRequest struct {
	Kind         *string    `json:"kind" validate:"omitempty,oneof=work education certificate"`
	Title        *string    `json:"title" validate:"omitempty,max=200"`
	Organization *string    `json:"organization" validate:"omitempty,max=200"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}
