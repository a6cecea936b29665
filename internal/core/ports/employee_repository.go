package ports

import (
	"context"

	"github.com/staffdesk/employee-system/internal/core/domain"
)

// ListEmployeesFilter carries all query parameters for listing employees.
// Page and PerPage are normalized by the service layer before reaching a
// repository; repositories may assume both are >= 1.
type ListEmployeesFilter struct {
	Search  string // optional: case-insensitive substring over text fields
	Status  string // optional: "active" or "inactive"
	Page    int    // 1-based
	PerPage int
}

// UpdateEmployeeInput is a partial update: nil fields keep their prior value.
type UpdateEmployeeInput struct {
	FullName   *string
	Username   *string
	Email      *string
	Phone      *string
	Position   *string
	Department *string
	AvatarURL  *string
	IsActive   *bool
}

// EmployeeRepository defines persistence operations for employees.
//
// List returns the requested page in insertion order plus the total number of
// matching records. Find methods return domain.ErrEmployeeNotFound when no
// record matches. Create and Update return domain.ErrUsernameTaken or
// domain.ErrEmailTaken on a uniqueness violation; Update excludes the record
// being updated from those checks.
type EmployeeRepository interface {
	List(ctx context.Context, filter ListEmployeesFilter) ([]*domain.Employee, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByUsername(ctx context.Context, username string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Create(ctx context.Context, emp *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
