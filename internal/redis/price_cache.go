package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tripcost/internal/domain"
)

// PriceCache caches the latest fuel price quote per fuel type in Redis,
// shielding the calculation path from repeated latest-quote queries.
type PriceCache struct {
	client *redis.Client
}

// NewPriceCache creates a new PriceCache.
func NewPriceCache(client *redis.Client) *PriceCache {
	return &PriceCache{client: client}
}

// FuelPriceCacheTTL bounds how stale a cached quote can get. Quotes only
// change on refresh, so a few minutes is safe.
const FuelPriceCacheTTL = 5 * time.Minute

const fuelPriceCachePrefix = "cache:fuelprice:"

// cachedQuote is the JSON shape stored in Redis.
type cachedQuote struct {
	ID              string    `json:"id"`
	FuelType        string    `json:"fuel_type"`
	PriceEURPerUnit float64   `json:"price_eur_per_unit"`
	Unit            string    `json:"unit"`
	Source          string    `json:"source"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// GetLatest retrieves the cached latest quote for a fuel type.
// Returns (nil, nil) on cache miss.
func (c *PriceCache) GetLatest(ctx context.Context, fuelType domain.FuelType) (*domain.FuelPrice, error) {
	key := fuelPriceCachePrefix + string(fuelType)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var quote cachedQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &domain.FuelPrice{
		ID:              quote.ID,
		FuelType:        domain.FuelType(quote.FuelType),
		PriceEURPerUnit: quote.PriceEURPerUnit,
		Unit:            quote.Unit,
		Source:          quote.Source,
		FetchedAt:       quote.FetchedAt,
	}, nil
}

// SetLatest stores the latest quote for a fuel type.
func (c *PriceCache) SetLatest(ctx context.Context, price *domain.FuelPrice) error {
	key := fuelPriceCachePrefix + string(price.FuelType)
	data, err := json.Marshal(cachedQuote{
		ID:              price.ID,
		FuelType:        string(price.FuelType),
		PriceEURPerUnit: price.PriceEURPerUnit,
		Unit:            price.Unit,
		Source:          price.Source,
		FetchedAt:       price.FetchedAt,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, FuelPriceCacheTTL).Err()
}

// Invalidate removes the cached quote for a fuel type, forcing the next
// read back to the store.
func (c *PriceCache) Invalidate(ctx context.Context, fuelType domain.FuelType) error {
	key := fuelPriceCachePrefix + string(fuelType)
	return c.client.Del(ctx, key).Err()
}
