package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/user-service/internal/user/domain"
)

// CreateUserCommand represents the command to create a user
type CreateUserCommand struct {
	Username string
	Email    string
	FullName string
}

// CreateUserHandler handles user creation command
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command. The exists checks are a fast
// path; the store's unique indexes remain the source of truth, so a
// duplicate insert that slips past them still comes back as a conflict.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	taken, err := h.repo.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, &domain.ConflictError{Field: "username", Value: cmd.Username}
	}

	taken, err = h.repo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, &domain.ConflictError{Field: "email", Value: cmd.Email}
	}

	now := time.Now()
	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		FullName:  cmd.FullName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, h.conflictFor(ctx, cmd, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// conflictFor resolves which unique field lost the insert race. A probe
// failure is reported as such rather than pinned on either field.
func (h *CreateUserHandler) conflictFor(ctx context.Context, cmd CreateUserCommand, cause error) error {
	if _, err := h.repo.FindByUsername(ctx, cmd.Username); err == nil {
		return &domain.ConflictError{Field: "username", Value: cmd.Username}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to resolve conflicting field: %w", err)
	}

	if _, err := h.repo.FindByEmail(ctx, cmd.Email); err == nil {
		return &domain.ConflictError{Field: "email", Value: cmd.Email}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to resolve conflicting field: %w", err)
	}

	// The colliding row is already gone; surface the original violation.
	return fmt.Errorf("failed to create user: %w", cause)
}
