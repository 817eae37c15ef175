package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

const refreshLockKey = "lock:fuelprice:refresh"

// AcquireRefreshLock attempts to acquire the fuel price refresh lock.
// Returns true if the lock was acquired, false if a refresh is already running.
func (s *LockStore) AcquireRefreshLock(ctx context.Context, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, refreshLockKey, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseRefreshLock releases the fuel price refresh lock.
func (s *LockStore) ReleaseRefreshLock(ctx context.Context) error {
	return s.client.Del(ctx, refreshLockKey).Err()
}
