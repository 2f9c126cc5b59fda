package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/pkg/logger"
)

const listCacheKey = "users:all"

// CachedUserRepository is a redis read-through cache in front of another
// domain.UserRepository. Single-user reads and the full listing are cached;
// every mutation invalidates the affected keys. Uniqueness probes always hit
// the underlying store so the constraint check never sees stale state.
type CachedUserRepository struct {
	next domain.UserRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedUserRepository creates a caching decorator around next
func NewCachedUserRepository(next domain.UserRepository, rdb *redis.Client, ttl time.Duration) *CachedUserRepository {
	return &CachedUserRepository{next: next, rdb: rdb, ttl: ttl}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("users:id:%d", id)
}

func (r *CachedUserRepository) getCached(ctx context.Context, key string, dest interface{}) bool {
	payload, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil || len(payload) == 0 {
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false
	}
	logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
	return true
}

func (r *CachedUserRepository) setCached(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache value")
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx).Err(err).Strs("cache_keys", keys).Msg("Failed to invalidate cache")
	}
}

// Create delegates and invalidates the listing
func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.next.Create(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, listCacheKey)
	return nil
}

// FindByID serves from cache when possible
func (r *CachedUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	key := userCacheKey(id)

	var cached domain.User
	if r.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	user, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.setCached(ctx, key, user)
	return user, nil
}

// FindByUsername always hits the store
func (r *CachedUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.next.FindByUsername(ctx, username)
}

// FindByEmail always hits the store
func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.next.FindByEmail(ctx, email)
}

// FindAll serves from cache when possible
func (r *CachedUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var cached []domain.User
	if r.getCached(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	users, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.setCached(ctx, listCacheKey, users)
	return users, nil
}

// ExistsByID always hits the store
func (r *CachedUserRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return r.next.ExistsByID(ctx, id)
}

// ExistsByUsername always hits the store
func (r *CachedUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.next.ExistsByUsername(ctx, username)
}

// ExistsByEmail always hits the store
func (r *CachedUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.next.ExistsByEmail(ctx, email)
}

// Update delegates and invalidates the user and the listing
func (r *CachedUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.next.Update(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, userCacheKey(user.ID), listCacheKey)
	return nil
}

// Delete delegates and invalidates the user and the listing
func (r *CachedUserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, userCacheKey(id), listCacheKey)
	return nil
}
