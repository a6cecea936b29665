package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

func testEmployeeRepo(t *testing.T) *EmployeeRepository {
	t.Helper()
	repo, err := NewEmployeeRepository(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func newEmployee(n int) *domain.Employee {
	return &domain.Employee{
		FullName:   fmt.Sprintf("Employee %02d", n),
		Username:   fmt.Sprintf("emp%02d", n),
		Email:      fmt.Sprintf("emp%02d@example.com", n),
		Phone:      "555-0100",
		Position:   "Software Engineer",
		Department: "Engineering",
		IsActive:   true,
	}
}

func TestEmployeeRepository_CreateAndFind(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newEmployee(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.ID != created.ID || found.FullName != created.FullName || found.Username != created.Username ||
		found.Email != created.Email || found.Phone != created.Phone || found.Position != created.Position ||
		found.Department != created.Department || !found.IsActive {
		t.Fatalf("found record differs from created:\n%+v\n%+v", found, created)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) || !found.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("timestamps differ after reload")
	}

	if _, err := repo.FindByUsername(ctx, "emp01"); err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "emp01@example.com"); err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_CreateUniqueness(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, newEmployee(1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	dupUsername := newEmployee(2)
	dupUsername.Username = "emp01"
	if _, err := repo.Create(ctx, dupUsername); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	dupEmail := newEmployee(3)
	dupEmail.Email = "emp01@example.com"
	if _, err := repo.Create(ctx, dupEmail); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Failed creates must not have persisted anything.
	n, _ := repo.Count(ctx)
	if n != 1 {
		t.Fatalf("expected 1 record, got %d", n)
	}
}

func TestEmployeeRepository_UpdatePartialMerge(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newEmployee(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(5 * time.Millisecond) // updatedAt must advance

	position := "Staff Engineer"
	inactive := false
	updated, err := repo.Update(ctx, created.ID, ports.UpdateEmployeeInput{
		Position: &position,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Position != "Staff Engineer" || updated.IsActive {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.FullName != created.FullName || updated.Email != created.Email || updated.Phone != created.Phone {
		t.Fatalf("unspecified fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updatedAt did not advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt changed on update")
	}
}

func TestEmployeeRepository_UpdateUniquenessExcludesSelf(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	first, _ := repo.Create(ctx, newEmployee(1))
	second, _ := repo.Create(ctx, newEmployee(2))

	// Re-submitting the record's own username is not a conflict.
	own := first.Username
	if _, err := repo.Update(ctx, first.ID, ports.UpdateEmployeeInput{Username: &own}); err != nil {
		t.Fatalf("update with own username: %v", err)
	}

	// Taking another record's username is.
	taken := second.Username
	if _, err := repo.Update(ctx, first.ID, ports.UpdateEmployeeInput{Username: &taken}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	takenEmail := second.Email
	if _, err := repo.Update(ctx, first.ID, ports.UpdateEmployeeInput{Email: &takenEmail}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestEmployeeRepository_UpdateNotFound(t *testing.T) {
	repo := testEmployeeRepo(t)
	name := "X"
	if _, err := repo.Update(context.Background(), "missing", ports.UpdateEmployeeInput{FullName: &name}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_Delete(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	created, _ := repo.Create(ctx, newEmployee(1))

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound for second delete, got %v", err)
	}
}

func TestEmployeeRepository_ListPagination(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		if _, err := repo.Create(ctx, newEmployee(i)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page2, total, err := repo.List(ctx, ports.ListEmployeesFilter{Page: 2, PerPage: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 12 {
		t.Fatalf("expected total 12, got %d", total)
	}
	if len(page2) != 5 {
		t.Fatalf("expected 5 records on page 2, got %d", len(page2))
	}
	if page2[0].Username != "emp06" {
		t.Fatalf("expected insertion order, page 2 starts at %s", page2[0].Username)
	}

	// Concatenating all pages reconstructs the collection without gaps or dups.
	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		items, _, err := repo.List(ctx, ports.ListEmployeesFilter{Page: page, PerPage: 5})
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		for _, emp := range items {
			if seen[emp.ID] {
				t.Fatalf("duplicate record %s across pages", emp.Username)
			}
			seen[emp.ID] = true
		}
	}
	if len(seen) != 12 {
		t.Fatalf("pages omitted records: saw %d of 12", len(seen))
	}

	// A page past the end is empty, not an error.
	empty, _, err := repo.List(ctx, ports.ListEmployeesFilter{Page: 4, PerPage: 5})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page past end, got %d", len(empty))
	}
}

func TestEmployeeRepository_ListSearch(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	eng := newEmployee(1)
	sales := newEmployee(2)
	sales.Department = "Sales"
	sales.Position = "Account Manager"
	mixed := newEmployee(3)
	mixed.Department = "Support"
	mixed.Position = "Engineering Liaison" // matches via position, not department

	for _, e := range []*domain.Employee{eng, sales, mixed} {
		if _, err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, total, err := repo.List(ctx, ports.ListEmployeesFilter{Search: "engineering", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 matches for case-insensitive search, got %d", total)
	}
	if items[0].Username != eng.Username || items[1].Username != mixed.Username {
		t.Fatalf("unexpected matches: %s, %s", items[0].Username, items[1].Username)
	}

	// Search also covers username and email.
	_, total, _ = repo.List(ctx, ports.ListEmployeesFilter{Search: "EMP02", Page: 1, PerPage: 10})
	if total != 1 {
		t.Fatalf("expected username match, got %d", total)
	}
}

func TestEmployeeRepository_ListStatusFilter(t *testing.T) {
	repo := testEmployeeRepo(t)
	ctx := context.Background()

	active, _ := repo.Create(ctx, newEmployee(1))
	inactive := newEmployee(2)
	inactive.IsActive = false
	if _, err := repo.Create(ctx, inactive); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, total, err := repo.List(ctx, ports.ListEmployeesFilter{Status: "active", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || items[0].ID != active.ID {
		t.Fatalf("expected only the active record, got %d", total)
	}

	_, total, _ = repo.List(ctx, ports.ListEmployeesFilter{Status: "inactive", Page: 1, PerPage: 10})
	if total != 1 {
		t.Fatalf("expected 1 inactive record, got %d", total)
	}

	nTotal, _ := repo.Count(ctx)
	nActive, _ := repo.CountActive(ctx)
	if nTotal != 2 || nActive != 1 {
		t.Fatalf("expected count 2 / active 1, got %d / %d", nTotal, nActive)
	}
}

func TestEmployeeRepository_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewEmployeeRepository(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	created, err := repo.Create(ctx, newEmployee(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reopened, err := NewEmployeeRepository(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	found, err := reopened.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
	if found.Username != created.Username {
		t.Fatalf("record lost across instances")
	}
}
