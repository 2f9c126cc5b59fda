package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/user-service/internal/user/domain"
)

// GetUserQuery represents the query to get a user by ID
type GetUserQuery struct {
	ID uint
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*domain.User, error) {
	user, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w with id: %d", domain.ErrNotFound, q.ID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
