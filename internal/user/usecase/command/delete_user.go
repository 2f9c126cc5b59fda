package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/user-service/internal/user/domain"
)

// DeleteUserCommand represents the command to delete a user
type DeleteUserCommand struct {
	ID uint
}

// DeleteUserHandler handles user deletion command
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command. The deleted user is returned so
// callers can record who was removed after the row is gone.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w with id: %d", domain.ErrNotFound, cmd.ID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w with id: %d", domain.ErrNotFound, cmd.ID)
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return user, nil
}
