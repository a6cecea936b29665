package jsonfile

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/employee-system/internal/core/domain"
)

const usersFile = "users.json"

// userDoc is the on-disk representation of a user. It is separate from
// domain.User because the password hash must be persisted but never leave the
// domain type in serialized form.
type userDoc struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRepository is a file-backed user store. Every operation performs a full
// load-mutate-save cycle under the repository mutex.
type UserRepository struct {
	mu   sync.RWMutex
	coll *Collection[userDoc]
}

// NewUserRepository opens (or initializes) the users document under dataDir.
// A fresh store is seeded with the two default accounts.
func NewUserRepository(dataDir string, log zerolog.Logger) (*UserRepository, error) {
	coll := NewCollection[userDoc](filepath.Join(dataDir, usersFile), log)

	seed, err := seedUsers()
	if err != nil {
		return nil, err
	}
	if err := coll.Init(seed); err != nil {
		return nil, err
	}

	return &UserRepository{coll: coll}, nil
}

// seedUsers builds the default admin/user accounts created on first run.
func seedUsers() ([]userDoc, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return []userDoc{
		{
			ID:        "1",
			Username:  "admin",
			Email:     "admin@example.com",
			Password:  string(adminHash),
			FullName:  "Admin User",
			Role:      domain.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "2",
			Username:  "user",
			Email:     "user@example.com",
			Password:  string(userHash),
			FullName:  "Regular User",
			Role:      domain.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.coll.Load() {
		if doc.ID == id {
			return userToDomain(doc), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.coll.Load() {
		if doc.Username == username {
			return userToDomain(doc), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.coll.Load() {
		if doc.Email == email {
			return userToDomain(doc), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create appends a new user after checking username and email uniqueness
// against the whole collection.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.coll.Load()
	for _, doc := range docs {
		if doc.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if doc.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	doc := userDoc{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.coll.Save(append(docs, doc)); err != nil {
		return nil, err
	}
	return userToDomain(doc), nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.coll.Load())), nil
}

func userToDomain(doc userDoc) *domain.User {
	return &domain.User{
		ID:           doc.ID,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		FullName:     doc.FullName,
		Role:         doc.Role,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
