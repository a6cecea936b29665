package jsonfile

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

const employeesFile = "employees.json"

// EmployeeRepository is a file-backed employee store with the same
// load-mutate-save discipline as UserRepository.
type EmployeeRepository struct {
	mu   sync.RWMutex
	coll *Collection[domain.Employee]
}

// NewEmployeeRepository opens (or initializes, empty) the employees document
// under dataDir.
func NewEmployeeRepository(dataDir string, log zerolog.Logger) (*EmployeeRepository, error) {
	coll := NewCollection[domain.Employee](filepath.Join(dataDir, employeesFile), log)
	if err := coll.Init(nil); err != nil {
		return nil, err
	}
	return &EmployeeRepository{coll: coll}, nil
}

// List filters the collection and returns the requested page in insertion
// order plus the total number of matches.
func (r *EmployeeRepository) List(_ context.Context, filter ports.ListEmployeesFilter) ([]*domain.Employee, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Employee
	for _, emp := range r.coll.Load() {
		if !matchesStatus(emp, filter.Status) {
			continue
		}
		if filter.Search != "" && !matchesSearch(emp, filter.Search) {
			continue
		}
		clone := emp
		matched = append(matched, &clone)
	}

	total := int64(len(matched))

	offset := (filter.Page - 1) * filter.PerPage
	if offset >= len(matched) {
		return []*domain.Employee{}, total, nil
	}
	end := offset + filter.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// matchesSearch reports whether any of the employee's text fields contains
// term, case-insensitively.
func matchesSearch(emp domain.Employee, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{emp.FullName, emp.Username, emp.Email, emp.Department, emp.Position} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesStatus(emp domain.Employee, status string) bool {
	switch status {
	case "active":
		return emp.IsActive
	case "inactive":
		return !emp.IsActive
	default:
		return true
	}
}

func (r *EmployeeRepository) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByID(id)
}

func (r *EmployeeRepository) findByID(id string) (*domain.Employee, error) {
	for _, emp := range r.coll.Load() {
		if emp.ID == id {
			clone := emp
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *EmployeeRepository) FindByUsername(_ context.Context, username string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, emp := range r.coll.Load() {
		if emp.Username == username {
			clone := emp
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *EmployeeRepository) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, emp := range r.coll.Load() {
		if emp.Email == email {
			clone := emp
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *EmployeeRepository) Create(_ context.Context, emp *domain.Employee) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.coll.Load()
	for _, existing := range docs {
		if existing.Username == emp.Username {
			return nil, domain.ErrUsernameTaken
		}
		if existing.Email == emp.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	created := *emp
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := r.coll.Save(append(docs, created)); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges the partial input over the stored record. Uniqueness checks
// skip the record being updated so an unchanged username/email is not a
// conflict with itself.
func (r *EmployeeRepository) Update(_ context.Context, id string, input ports.UpdateEmployeeInput) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.coll.Load()
	index := -1
	for i, emp := range docs {
		if emp.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, domain.ErrEmployeeNotFound
	}

	for _, emp := range docs {
		if emp.ID == id {
			continue
		}
		if input.Username != nil && emp.Username == *input.Username {
			return nil, domain.ErrUsernameTaken
		}
		if input.Email != nil && emp.Email == *input.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	updated := docs[index]
	if input.FullName != nil {
		updated.FullName = *input.FullName
	}
	if input.Username != nil {
		updated.Username = *input.Username
	}
	if input.Email != nil {
		updated.Email = *input.Email
	}
	if input.Phone != nil {
		updated.Phone = *input.Phone
	}
	if input.Position != nil {
		updated.Position = *input.Position
	}
	if input.Department != nil {
		updated.Department = *input.Department
	}
	if input.AvatarURL != nil {
		updated.AvatarURL = *input.AvatarURL
	}
	if input.IsActive != nil {
		updated.IsActive = *input.IsActive
	}
	updated.UpdatedAt = time.Now().UTC()

	docs[index] = updated
	if err := r.coll.Save(docs); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.coll.Load()
	remaining := docs[:0:0]
	for _, emp := range docs {
		if emp.ID != id {
			remaining = append(remaining, emp)
		}
	}
	if len(remaining) == len(docs) {
		return domain.ErrEmployeeNotFound
	}
	return r.coll.Save(remaining)
}

func (r *EmployeeRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.coll.Load())), nil
}

func (r *EmployeeRepository) CountActive(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, emp := range r.coll.Load() {
		if emp.IsActive {
			n++
		}
	}
	return n, nil
}
