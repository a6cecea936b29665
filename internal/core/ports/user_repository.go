package ports

import (
	"context"

	"github.com/staffdesk/employee-system/internal/core/domain"
)

// UserRepository defines persistence operations for users. Find methods
// return domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns the id and timestamps and persists the user. It returns
	// domain.ErrUsernameTaken or domain.ErrEmailTaken on a uniqueness violation.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
