package handler

import "github.com/staffdesk/employee-system/internal/core/domain"

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,alphanum"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
