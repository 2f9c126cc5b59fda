package query_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
	"github.com/tair/user-service/internal/user/usecase/query"
)

func seedUser(t *testing.T, repo domain.UserRepository, username, email string, createdAt time.Time) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:  username,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return user
}

func TestGetUser_Found(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	seeded := seedUser(t, repo, "jdoe", "jdoe@example.com", time.Now())

	user, err := query.NewGetUserHandler(repo).Handle(context.Background(), query.GetUserQuery{ID: seeded.ID})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if user.Username != "jdoe" {
		t.Fatalf("expected jdoe, got %q", user.Username)
	}
}

func TestGetUser_NotFoundNamesTheID(t *testing.T) {
	repo := repository.NewMemoryUserRepository()

	_, err := query.NewGetUserHandler(repo).Handle(context.Background(), query.GetUserQuery{ID: 99})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "99") {
		t.Fatalf("expected message to name the id, got %q", err.Error())
	}
}

func TestListUsers_Empty(t *testing.T) {
	repo := repository.NewMemoryUserRepository()

	users, err := query.NewListUsersHandler(repo).Handle(context.Background(), query.ListUsersQuery{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %d users", len(users))
	}
}

func TestListUsers_NewestFirst(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	now := time.Now()
	seedUser(t, repo, "older", "older@example.com", now.Add(-time.Hour))
	seedUser(t, repo, "newer", "newer@example.com", now)

	users, err := query.NewListUsersHandler(repo).Handle(context.Background(), query.ListUsersQuery{})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "newer" {
		t.Fatalf("expected newest first, got %q", users[0].Username)
	}
}
