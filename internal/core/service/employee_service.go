package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// EmployeeService implements employee directory use cases over an injected
// repository.
type EmployeeService struct {
	repo ports.EmployeeRepository
	log  zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, log: log}
}

// List returns one page of employees. Page and perPage below 1 fall back to
// defaults here, at the boundary, so repositories can assume sane values.
func (s *EmployeeService) List(ctx context.Context, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	items, total, err := s.repo.List(ctx, ports.ListEmployeesFilter{
		Search:  input.Search,
		Status:  input.Status,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &ports.ListEmployeesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	created, err := s.repo.Create(ctx, &domain.Employee{
		FullName:   input.FullName,
		Username:   input.Username,
		Email:      input.Email,
		Phone:      input.Phone,
		Position:   input.Position,
		Department: input.Department,
		AvatarURL:  input.AvatarURL,
		IsActive:   isActive,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", created.ID).Str("username", created.Username).Msg("employee created")
	return created, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, input ports.UpdateEmployeeInput) (*domain.Employee, error) {
	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", updated.ID).Msg("employee updated")
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}

// UsernameAvailable reports whether username is free. A match on excludeID
// still counts as available so an edit form can keep the current value.
func (s *EmployeeService) UsernameAvailable(ctx context.Context, username, excludeID string) (bool, error) {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return true, nil
		}
		return false, err
	}
	return excludeID != "" && existing.ID == excludeID, nil
}

// EmailAvailable reports whether email is free, with the same excludeID
// semantics as UsernameAvailable.
func (s *EmployeeService) EmailAvailable(ctx context.Context, email, excludeID string) (bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return true, nil
		}
		return false, err
	}
	return excludeID != "" && existing.ID == excludeID, nil
}

func (s *EmployeeService) Stats(ctx context.Context) (*ports.EmployeeStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.EmployeeStats{
		Total:    total,
		Active:   active,
		Inactive: total - active,
	}, nil
}
