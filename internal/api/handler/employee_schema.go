package handler

import "github.com/staffdesk/employee-system/internal/core/domain"

type createEmployeeRequest struct {
	FullName   string `json:"fullName"   validate:"required"`
	Username   string `json:"username"   validate:"required,min=3,alphanum"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"      validate:"required"`
	Position   string `json:"position"   validate:"required"`
	Department string `json:"department" validate:"required"`
	AvatarURL  string `json:"avatarUrl"  validate:"omitempty,url"`
	IsActive   *bool  `json:"isActive"`
}

// updateEmployeeRequest is a partial update: absent fields keep their stored
// values, so every field is a pointer.
type updateEmployeeRequest struct {
	FullName   *string `json:"fullName"   validate:"omitempty,min=1"`
	Username   *string `json:"username"   validate:"omitempty,min=3,alphanum"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Phone      *string `json:"phone"      validate:"omitempty,min=1"`
	Position   *string `json:"position"   validate:"omitempty,min=1"`
	Department *string `json:"department" validate:"omitempty,min=1"`
	AvatarURL  *string `json:"avatarUrl"  validate:"omitempty,url"`
	IsActive   *bool   `json:"isActive"`
}

type paginationResponse struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type listEmployeesResponse struct {
	Data       []*domain.Employee `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type employeeResponse struct {
	Data *domain.Employee `json:"data"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

type statsResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}
