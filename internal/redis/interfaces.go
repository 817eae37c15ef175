package redis

import (
	"context"
	"time"

	"tripcost/internal/domain"
)

// PriceCacheInterface defines the interface for fuel price caching.
type PriceCacheInterface interface {
	GetLatest(ctx context.Context, fuelType domain.FuelType) (*domain.FuelPrice, error)
	SetLatest(ctx context.Context, price *domain.FuelPrice) error
	Invalidate(ctx context.Context, fuelType domain.FuelType) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireRefreshLock(ctx context.Context, ttl time.Duration) (bool, error)
	ReleaseRefreshLock(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ PriceCacheInterface = (*PriceCache)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
