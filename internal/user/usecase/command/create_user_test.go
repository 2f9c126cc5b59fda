package command_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
	"github.com/tair/user-service/internal/user/usecase/command"
)

func TestCreateUser_Success(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := command.NewCreateUserHandler(repo)

	user, err := handler.Handle(context.Background(), command.CreateUserCommand{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		FullName: "John Doe",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected a non-zero id")
	}
	if !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at on create, got %v and %v", user.CreatedAt, user.UpdatedAt)
	}
	if user.Username != "jdoe" || user.Email != "jdoe@example.com" || user.FullName != "John Doe" {
		t.Fatalf("unexpected user fields: %+v", user)
	}
}

func TestCreateUser_UsernameConflict(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := command.NewCreateUserHandler(repo)
	ctx := context.Background()

	if _, err := handler.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "jdoe@example.com"}); err != nil {
		t.Fatalf("first Handle: %v", err)
	}

	_, err := handler.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "second@example.com"})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Field != "username" || conflict.Value != "jdoe" {
		t.Fatalf("expected username conflict on jdoe, got %+v", conflict)
	}

	// The rejected create must not have touched the store.
	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestCreateUser_EmailConflict(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	handler := command.NewCreateUserHandler(repo)
	ctx := context.Background()

	if _, err := handler.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "jdoe@example.com"}); err != nil {
		t.Fatalf("first Handle: %v", err)
	}

	_, err := handler.Handle(ctx, command.CreateUserCommand{Username: "free", Email: "jdoe@example.com"})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Field != "email" || conflict.Value != "jdoe@example.com" {
		t.Fatalf("expected email conflict, got %+v", conflict)
	}
}

// racingRepo simulates an insert losing the uniqueness race: the pre-checks
// see a free identity but the store rejects the insert.
type racingRepo struct {
	domain.UserRepository
}

func (racingRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (racingRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }

func TestCreateUser_StoreConstraintIsSourceOfTruth(t *testing.T) {
	mem := repository.NewMemoryUserRepository()
	ctx := context.Background()

	seed := command.NewCreateUserHandler(mem)
	if _, err := seed.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "jdoe@example.com"}); err != nil {
		t.Fatalf("seed Handle: %v", err)
	}

	handler := command.NewCreateUserHandler(racingRepo{mem})
	_, err := handler.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "other@example.com"})

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError from the store-level violation, got %v", err)
	}
	if conflict.Field != "username" {
		t.Fatalf("expected the username to be blamed, got %+v", conflict)
	}
}

// faultyProbeRepo loses the insert race, then fails the lookup that would
// identify the colliding field.
type faultyProbeRepo struct {
	domain.UserRepository
}

func (faultyProbeRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (faultyProbeRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }

func (faultyProbeRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection reset")
}

func TestCreateUser_ProbeFailureIsNotAConflict(t *testing.T) {
	mem := repository.NewMemoryUserRepository()
	ctx := context.Background()

	seed := command.NewCreateUserHandler(mem)
	if _, err := seed.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "jdoe@example.com"}); err != nil {
		t.Fatalf("seed Handle: %v", err)
	}

	handler := command.NewCreateUserHandler(faultyProbeRepo{mem})
	_, err := handler.Handle(ctx, command.CreateUserCommand{Username: "jdoe", Email: "other@example.com"})
	if err == nil {
		t.Fatal("expected an error")
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		t.Fatalf("expected the probe failure to surface, got conflict %+v", conflict)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected the probe failure in the chain, got %q", err.Error())
	}
}
