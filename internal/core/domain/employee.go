package domain

import (
	"errors"
	"time"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
)

// Employee is a directory record. Username and email are unique across all
// employees, in a namespace independent from users.
type Employee struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
