package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripcost/internal/domain"
	"tripcost/internal/redis"
	"tripcost/internal/repository"
)

// refreshLockTTL bounds how long a crashed refresh can block the next one.
const refreshLockTTL = 2 * time.Minute

// feedSource is the provenance label stored with quotes from the feed.
const feedSource = "minetur-rest"

// PriceFeedOptions configures the external fuel price feed client.
type PriceFeedOptions struct {
	FeedURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	HTTPClient   *http.Client // optional, overrides Timeout when set
}

// PriceFeedService fetches the national fuel station feed, averages station
// prices per fuel type and stores one dated quote per type. Refreshes are
// serialized through a Redis lock so concurrent calls don't stampede the
// upstream API. The calculation core never calls this; it only reads
// already-stored quotes.
type PriceFeedService struct {
	priceRepo  repository.FuelPriceRepository
	priceCache redis.PriceCacheInterface
	lockStore  redis.LockStoreInterface
	client     *http.Client
	opts       PriceFeedOptions
}

// NewPriceFeedService creates a new PriceFeedService. priceCache and
// lockStore may be nil (no caching, no refresh serialization).
func NewPriceFeedService(
	priceRepo repository.FuelPriceRepository,
	priceCache redis.PriceCacheInterface,
	lockStore redis.LockStoreInterface,
	opts PriceFeedOptions,
) *PriceFeedService {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &PriceFeedService{
		priceRepo:  priceRepo,
		priceCache: priceCache,
		lockStore:  lockStore,
		client:     client,
		opts:       opts,
	}
}

// stationFeed is the shape of the upstream response. Station prices use
// comma decimal separators and may be empty.
type stationFeed struct {
	Stations []station `json:"ListaEESSPrecio"`
}

type station struct {
	Gasoline95 string `json:"Precio Gasolina 95 E5"`
	DieselA    string `json:"Precio Gasoleo A"`
}

// Refresh fetches the feed and stores averaged quotes. Returns the number
// of quotes stored.
func (s *PriceFeedService) Refresh(ctx context.Context) (int, error) {
	if s.lockStore != nil {
		ok, err := s.lockStore.AcquireRefreshLock(ctx, refreshLockTTL)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrRefreshInProgress
		}
		defer func() { _ = s.lockStore.ReleaseRefreshLock(ctx) }()
	}

	feed, err := s.fetchFeed(ctx)
	if err != nil {
		return 0, err
	}

	var gasolinePrices, dieselPrices []float64
	for _, st := range feed.Stations {
		if v, ok := parseCommaDecimal(st.Gasoline95); ok {
			gasolinePrices = append(gasolinePrices, v)
		}
		if v, ok := parseCommaDecimal(st.DieselA); ok {
			dieselPrices = append(dieselPrices, v)
		}
	}

	now := time.Now().UTC()
	stored := 0
	if quote, err := s.storeAverage(ctx, domain.FuelGasoline, gasolinePrices, now); err != nil {
		return stored, err
	} else if quote {
		stored++
	}
	if quote, err := s.storeAverage(ctx, domain.FuelDiesel, dieselPrices, now); err != nil {
		return stored, err
	} else if quote {
		stored++
	}

	return stored, nil
}

// fetchFeed retrieves the station list with bounded retries and linear
// backoff between attempts.
func (s *PriceFeedService) fetchFeed(ctx context.Context) (*stationFeed, error) {
	attempts := s.opts.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.opts.RetryBackoff * time.Duration(attempt)):
			}
		}

		feed, err := s.fetchOnce(ctx)
		if err == nil {
			return feed, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrPriceFeedUnavailable, lastErr)
}

func (s *PriceFeedService) fetchOnce(ctx context.Context) (*stationFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.FeedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var feed stationFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// storeAverage stores one averaged quote for a fuel type. No prices means
// no quote; the previous quote stays current.
func (s *PriceFeedService) storeAverage(ctx context.Context, fuelType domain.FuelType, prices []float64, fetchedAt time.Time) (bool, error) {
	if len(prices) == 0 {
		return false, nil
	}

	var sum float64
	for _, p := range prices {
		sum += p
	}

	quote := &domain.FuelPrice{
		ID:              uuid.New().String(),
		FuelType:        fuelType,
		PriceEURPerUnit: sum / float64(len(prices)),
		Unit:            "eur/l",
		Source:          feedSource,
		FetchedAt:       fetchedAt,
	}

	if err := s.priceRepo.Create(ctx, quote); err != nil {
		return false, err
	}

	// Best effort: the cache TTL would catch up anyway.
	if s.priceCache != nil {
		_ = s.priceCache.SetLatest(ctx, quote)
	}

	return true, nil
}

// parseCommaDecimal parses prices like "1,629" (comma decimal separator).
// Empty and unparseable values are skipped, matching the feed's habit of
// leaving prices blank for fuels a station doesn't sell.
func parseCommaDecimal(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
