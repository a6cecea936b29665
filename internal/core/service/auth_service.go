package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

// LoginLimiter abstracts the failed-login throttle (Redis). A nil limiter
// disables throttling.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username, remoteIP string) (bool, error)
	RecordFailure(ctx context.Context, username, remoteIP string) error
	Reset(ctx context.Context, username, remoteIP string) error
}

// AuthService implements login, registration, profile lookup, and token
// issuance/verification.
type AuthService struct {
	repo      ports.UserRepository
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login verifies credentials and issues a signed token. An unknown username
// and a wrong password fail identically so callers cannot probe which
// usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password, remoteIP string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyAttempts(ctx, username, remoteIP)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, proceeding")
		} else if blocked {
			return "", nil, domain.ErrTooManyLogins
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username, remoteIP)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username, remoteIP)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username, remoteIP); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter reset failed")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("login succeeded")
	return token, user.Sanitized(), nil
}

// Register hashes the password and creates the account. Uniqueness conflicts
// from the repository are propagated unchanged.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created.Sanitized(), nil
}

// GetProfile fetches a user by id with the password hash stripped.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// VerifyToken validates signature and expiry and returns the embedded claims.
func (s *AuthService) VerifyToken(token string) (*ports.Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	userID, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.Claims{UserID: userID, Username: username, Email: email, Role: role}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) recordFailure(ctx context.Context, username, remoteIP string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username, remoteIP); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter record failed")
	}
}
