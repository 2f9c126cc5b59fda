package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/tair/user-service/internal/user/domain"
)

// MemoryUserRepository is an in-process domain.UserRepository. It enforces
// the same uniqueness invariants as the SQL backends, so it doubles as a
// dependency-free dev backend and as the store used in tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	nextID  uint
	users   map[uint]domain.User
	byName  map[string]uint
	byEmail map[string]uint
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		nextID:  1,
		users:   make(map[uint]domain.User),
		byName:  make(map[string]uint),
		byEmail: make(map[string]uint),
	}
}

// Create inserts a new user, assigning its ID. Uniqueness is checked under
// the same lock as the insert, so concurrent duplicate creates cannot both
// succeed.
func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[user.Username]; taken {
		return domain.ErrDuplicateKey
	}
	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrDuplicateKey
	}

	user.ID = r.nextID
	r.nextID++

	r.users[user.ID] = *user
	r.byName[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID
	return nil
}

// FindByID retrieves a user by ID
func (r *MemoryUserRepository) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// FindByUsername retrieves a user by username
func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}

// FindAll retrieves all users, newest first
func (r *MemoryUserRepository) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

// ExistsByID reports whether a user with the given ID exists
func (r *MemoryUserRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// ExistsByUsername reports whether the username is taken
func (r *MemoryUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[username]
	return ok, nil
}

// ExistsByEmail reports whether the email is taken
func (r *MemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

// Update persists the user's mutable fields
func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}

	if id, taken := r.byName[user.Username]; taken && id != user.ID {
		return domain.ErrDuplicateKey
	}
	if id, taken := r.byEmail[user.Email]; taken && id != user.ID {
		return domain.ErrDuplicateKey
	}

	delete(r.byName, current.Username)
	delete(r.byEmail, current.Email)

	r.users[user.ID] = *user
	r.byName[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID
	return nil
}

// Delete removes a user
func (r *MemoryUserRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}

	delete(r.users, id)
	delete(r.byName, user.Username)
	delete(r.byEmail, user.Email)
	return nil
}
