package ports

import (
	"context"

	"github.com/staffdesk/employee-system/internal/core/domain"
)

// RegisterInput carries all data needed to create a new user account.
// Password is plaintext; the service hashes it before persistence.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string // defaults to "user" when empty
}

// Claims is the identity embedded in an issued token.
type Claims struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

// AuthService implements credential verification, token issuance and
// verification, and profile lookup. Returned users never carry a password
// hash.
type AuthService interface {
	// Login fails with domain.ErrInvalidCredentials for both an unknown
	// username and a wrong password, and with domain.ErrTooManyLogins when the
	// caller exceeded the login attempt budget.
	Login(ctx context.Context, username, password, remoteIP string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	// VerifyToken fails with domain.ErrTokenExpired for an expired token and
	// domain.ErrTokenInvalid for anything else that does not verify.
	VerifyToken(token string) (*Claims, error)
}
