package ports

import (
	"context"

	"github.com/staffdesk/employee-system/internal/core/domain"
)

// CreateEmployeeInput carries all data needed to create an employee record.
type CreateEmployeeInput struct {
	FullName   string
	Username   string
	Email      string
	Phone      string
	Position   string
	Department string
	AvatarURL  string
	IsActive   *bool // nil defaults to true
}

// ListEmployeesInput carries raw (pre-normalization) list parameters.
type ListEmployeesInput struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// ListEmployeesResult is one page of employees plus pagination metadata.
type ListEmployeesResult struct {
	Items      []*domain.Employee
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// EmployeeStats summarizes the collection.
type EmployeeStats struct {
	Total    int64
	Active   int64
	Inactive int64
}

// EmployeeService defines use-case operations for employee records.
type EmployeeService interface {
	List(ctx context.Context, input ListEmployeesInput) (*ListEmployeesResult, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	Create(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	// UsernameAvailable and EmailAvailable report whether the value is free to
	// use; excludeID ignores a match on that record (used when editing).
	UsernameAvailable(ctx context.Context, username, excludeID string) (bool, error)
	EmailAvailable(ctx context.Context, email, excludeID string) (bool, error)
	Stats(ctx context.Context) (*EmployeeStats, error)
}
