package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = strconv.Itoa(r.nextID)
	now := time.Now().UTC()
	created.CreatedAt, created.UpdatedAt = now, now
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// stubLimiter blocks when blocked is true and records calls.
type stubLimiter struct {
	blocked  bool
	failures int
	resets   int
}

func (l *stubLimiter) TooManyAttempts(_ context.Context, _, _ string) (bool, error) {
	return l.blocked, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, _, _ string) error {
	l.failures++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, _, _ string) error {
	l.resets++
	return nil
}

func newTestAuthService(repo ports.UserRepository, limiter LoginLimiter) *AuthService {
	return NewAuthService(repo, limiter, "secret", time.Hour, zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	created, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		FullName:     "Test " + username,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "carol", "s3cret1", domain.RoleAdmin)
	svc := newTestAuthService(repo, nil)

	token, user, err := svc.Login(context.Background(), "carol", "s3cret1", "10.0.0.1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash leaked in login response")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != seeded.ID || claims["username"] != "carol" || claims["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownUserFailIdentically(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave", "goodpass", domain.RoleUser)
	svc := newTestAuthService(repo, nil)

	_, _, errWrongPass := svc.Login(context.Background(), "dave", "badpass", "")
	_, _, errNoUser := svc.Login(context.Background(), "ghost", "whatever", "")

	if !errors.Is(errWrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if !errors.Is(errNoUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errNoUser)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "eve", "pass123", domain.RoleUser)
	limiter := &stubLimiter{blocked: true}
	svc := newTestAuthService(repo, limiter)

	if _, _, err := svc.Login(context.Background(), "eve", "pass123", "10.0.0.9"); !errors.Is(err, domain.ErrTooManyLogins) {
		t.Fatalf("expected ErrTooManyLogins, got %v", err)
	}
}

func TestAuthService_Login_LimiterBookkeeping(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "frank", "pass123", domain.RoleUser)
	limiter := &stubLimiter{}
	svc := newTestAuthService(repo, limiter)

	_, _, _ = svc.Login(context.Background(), "frank", "wrong", "")
	if limiter.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", limiter.failures)
	}

	if _, _, err := svc.Login(context.Background(), "frank", "pass123", ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset on success, got %d", limiter.resets)
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
		FullName: "Alice A",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash leaked in register response")
	}

	stored, _ := repo.FindByUsername(context.Background(), "alice")
	if stored.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "pass123", Role: "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Conflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	input := ports.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "pass123"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "grace", "pass123", domain.RoleUser)
	svc := newTestAuthService(repo, nil)

	user, err := svc.GetProfile(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if user.Username != "grace" || user.PasswordHash != "" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	if _, err := svc.GetProfile(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "henry", "pass123", domain.RoleAdmin)
	svc := newTestAuthService(repo, nil)

	token, _, err := svc.Login(context.Background(), "henry", "pass123", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != seeded.ID || claims.Username != "henry" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": domain.RoleUser,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.VerifyToken(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_VerifyToken_Tampered(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": domain.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.VerifyToken(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}
