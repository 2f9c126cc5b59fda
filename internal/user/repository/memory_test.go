package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
)

func newUser(username, email string) *domain.User {
	now := time.Now()
	return &domain.User{
		Username:  username,
		Email:     email,
		FullName:  "Test User",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryRepository_CreateAssignsID(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("jdoe", "jdoe@example.com")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected a non-zero id after create")
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Username != "jdoe" {
		t.Fatalf("expected username jdoe, got %q", found.Username)
	}
}

func TestMemoryRepository_CreateEnforcesUniqueness(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, newUser("jdoe", "jdoe@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Create(ctx, newUser("jdoe", "other@example.com")); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey for duplicate username, got %v", err)
	}
	if err := repo.Create(ctx, newUser("other", "jdoe@example.com")); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey for duplicate email, got %v", err)
	}

	// A rejected insert must not leave partial state behind.
	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user after rejected inserts, got %d", len(users))
	}
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	repo := repository.NewMemoryUserRepository()

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepository_SecondaryLookups(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("jdoe", "jdoe@example.com")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byName, err := repo.FindByUsername(ctx, "jdoe")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if byName.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, byName.ID)
	}

	byEmail, err := repo.FindByEmail(ctx, "jdoe@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, byEmail.ID)
	}

	for _, tc := range []struct {
		name string
		got  func() (bool, error)
		want bool
	}{
		{"existing id", func() (bool, error) { return repo.ExistsByID(ctx, user.ID) }, true},
		{"absent id", func() (bool, error) { return repo.ExistsByID(ctx, 99) }, false},
		{"existing username", func() (bool, error) { return repo.ExistsByUsername(ctx, "jdoe") }, true},
		{"absent username", func() (bool, error) { return repo.ExistsByUsername(ctx, "ghost") }, false},
		{"existing email", func() (bool, error) { return repo.ExistsByEmail(ctx, "jdoe@example.com") }, true},
		{"absent email", func() (bool, error) { return repo.ExistsByEmail(ctx, "ghost@example.com") }, false},
	} {
		found, err := tc.got()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if found != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, found)
		}
	}
}

func TestMemoryRepository_UpdateMovesIndexes(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("jdoe", "jdoe@example.com")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	user.Username = "jsmith"
	user.Email = "jsmith@example.com"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Old username must be free again.
	if err := repo.Create(ctx, newUser("jdoe", "new@example.com")); err != nil {
		t.Fatalf("expected old username to be reusable, got %v", err)
	}

	if _, err := repo.FindByUsername(ctx, "jsmith"); err != nil {
		t.Fatalf("FindByUsername after update: %v", err)
	}
}

func TestMemoryRepository_UpdateRejectsCollisions(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	first := newUser("jdoe", "jdoe@example.com")
	second := newUser("jsmith", "jsmith@example.com")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	second.Username = "jdoe"
	if err := repo.Update(ctx, second); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestMemoryRepository_DeleteFreesIndexes(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("jdoe", "jdoe@example.com")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	// Username and email are free again.
	if err := repo.Create(ctx, newUser("jdoe", "jdoe@example.com")); err != nil {
		t.Fatalf("expected identity to be reusable after delete, got %v", err)
	}
}

func TestMemoryRepository_FindAllNewestFirst(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	older := newUser("older", "older@example.com")
	older.CreatedAt = time.Now().Add(-time.Hour)
	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("Create older: %v", err)
	}
	newer := newUser("newer", "newer@example.com")
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("Create newer: %v", err)
	}

	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "newer" || users[1].Username != "older" {
		t.Fatalf("expected newest first, got %q then %q", users[0].Username, users[1].Username)
	}
}
