package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/user-service/internal/user/domain"
)

// UpdateUserCommand represents the command to update a user
type UpdateUserCommand struct {
	ID       uint
	Username string
	Email    string
	FullName string
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command. Only username, email and
// full name are overwritten; id and created_at never change.
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w with id: %d", domain.ErrNotFound, cmd.ID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user.Username = cmd.Username
	user.Email = cmd.Email
	user.FullName = cmd.FullName
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateKey):
			return nil, h.conflictFor(ctx, cmd, err)
		case errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("%w with id: %d", domain.ErrNotFound, cmd.ID)
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return user, nil
}

// conflictFor resolves which unique field the update collided on. A probe
// failure is reported as such rather than pinned on either field.
func (h *UpdateUserHandler) conflictFor(ctx context.Context, cmd UpdateUserCommand, cause error) error {
	if other, err := h.repo.FindByUsername(ctx, cmd.Username); err == nil {
		if other.ID != cmd.ID {
			return &domain.ConflictError{Field: "username", Value: cmd.Username}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to resolve conflicting field: %w", err)
	}

	if other, err := h.repo.FindByEmail(ctx, cmd.Email); err == nil {
		if other.ID != cmd.ID {
			return &domain.ConflictError{Field: "email", Value: cmd.Email}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to resolve conflicting field: %w", err)
	}

	return fmt.Errorf("failed to update user: %w", cause)
}
