package command_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
	"github.com/tair/user-service/internal/user/usecase/command"
)

func TestUpdateUser_OverwritesOnlyMutableFields(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	created, err := command.NewCreateUserHandler(repo).Handle(ctx, command.CreateUserCommand{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		FullName: "John Doe",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	updated, err := command.NewUpdateUserHandler(repo).Handle(ctx, command.UpdateUserCommand{
		ID:       created.ID,
		Username: "new",
		Email:    "new@example.com",
		FullName: "New Name",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != created.ID {
		t.Fatalf("id changed: %d -> %d", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at did not advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Username != "new" || updated.Email != "new@example.com" || updated.FullName != "New Name" {
		t.Fatalf("unexpected fields after update: %+v", updated)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := command.NewUpdateUserHandler(repo)

	_, err := handler.Handle(context.Background(), command.UpdateUserCommand{
		ID:       99,
		Username: "ghost",
		Email:    "ghost@example.com",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUser_ConflictOnTakenUsername(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()
	create := command.NewCreateUserHandler(repo)

	if _, err := create.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "jdoe@example.com"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := create.Handle(ctx, command.CreateUserCommand{Username: "jsmith", Email: "jsmith@example.com"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	_, err = command.NewUpdateUserHandler(repo).Handle(ctx, command.UpdateUserCommand{
		ID:       second.ID,
		Username: "jdoe",
		Email:    "jsmith@example.com",
	})

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Field != "username" || conflict.Value != "jdoe" {
		t.Fatalf("expected username conflict on jdoe, got %+v", conflict)
	}
}

func TestUpdateUser_KeepingOwnIdentityIsNotAConflict(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	created, err := command.NewCreateUserHandler(repo).Handle(ctx, command.CreateUserCommand{
		Username: "jdoe",
		Email:    "jdoe@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same username and email, only the full name changes.
	if _, err := command.NewUpdateUserHandler(repo).Handle(ctx, command.UpdateUserCommand{
		ID:       created.ID,
		Username: "jdoe",
		Email:    "jdoe@example.com",
		FullName: "John D.",
	}); err != nil {
		t.Fatalf("expected self-update to succeed, got %v", err)
	}
}
