package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tripcost/internal/domain"
	"tripcost/internal/service"
)

const feedPayload = `{
	"ListaEESSPrecio": [
		{"Precio Gasolina 95 E5": "1,60", "Precio Gasoleo A": "1,50"},
		{"Precio Gasolina 95 E5": "1,64", "Precio Gasoleo A": "1,54"},
		{"Precio Gasolina 95 E5": "", "Precio Gasoleo A": "1,52"}
	]
}`

func newFeedService(url string, priceRepo *MockFuelPriceRepository, lockStore *MockLockStore) *service.PriceFeedService {
	return service.NewPriceFeedService(priceRepo, nil, lockStore, service.PriceFeedOptions{
		FeedURL:      url,
		Timeout:      2 * time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	})
}

func TestPriceFeed_RefreshStoresAveragedQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	priceRepo := NewMockFuelPriceRepository()
	svc := newFeedService(server.URL, priceRepo, NewMockLockStore())

	stored, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != 2 {
		t.Fatalf("expected 2 quotes stored, got %d", stored)
	}

	gasoline, err := priceRepo.GetLatestByFuelType(context.Background(), domain.FuelGasoline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Average of 1.60 and 1.64; the blank price is skipped.
	if !almostEqual(gasoline.PriceEURPerUnit, 1.62) {
		t.Errorf("expected gasoline average 1.62, got %f", gasoline.PriceEURPerUnit)
	}

	diesel, err := priceRepo.GetLatestByFuelType(context.Background(), domain.FuelDiesel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Average of 1.50, 1.54 and 1.52.
	if !almostEqual(diesel.PriceEURPerUnit, 1.52) {
		t.Errorf("expected diesel average 1.52, got %f", diesel.PriceEURPerUnit)
	}
}

func TestPriceFeed_ConcurrentRefreshRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	lockStore := NewMockLockStore()
	lockStore.HoldLock()
	svc := newFeedService(server.URL, NewMockFuelPriceRepository(), lockStore)

	_, err := svc.Refresh(context.Background())
	if !errors.Is(err, service.ErrRefreshInProgress) {
		t.Fatalf("expected ErrRefreshInProgress, got %v", err)
	}
}

func TestPriceFeed_ReleasesLockAfterRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	lockStore := NewMockLockStore()
	svc := newFeedService(server.URL, NewMockFuelPriceRepository(), lockStore)

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lockStore.ReleaseCallCount != 1 {
		t.Errorf("expected lock released once, got %d", lockStore.ReleaseCallCount)
	}

	// A second refresh must acquire the lock again.
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error on second refresh: %v", err)
	}
}

func TestPriceFeed_RetriesThenFails(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newFeedService(server.URL, NewMockFuelPriceRepository(), NewMockLockStore())

	_, err := svc.Refresh(context.Background())
	if !errors.Is(err, service.ErrPriceFeedUnavailable) {
		t.Fatalf("expected ErrPriceFeedUnavailable, got %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 3 {
		t.Errorf("expected 3 attempts (1 + 2 retries), got %d", got)
	}
}

func TestPriceFeed_RecoversOnRetry(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	svc := newFeedService(server.URL, NewMockFuelPriceRepository(), NewMockLockStore())

	stored, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != 2 {
		t.Errorf("expected 2 quotes stored after retry, got %d", stored)
	}
}

func TestPriceFeed_EmptyFeedStoresNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ListaEESSPrecio": []}`))
	}))
	defer server.Close()

	priceRepo := NewMockFuelPriceRepository()
	svc := newFeedService(server.URL, priceRepo, NewMockLockStore())

	stored, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != 0 {
		t.Errorf("expected no quotes stored, got %d", stored)
	}
	if priceRepo.CreateCallCount != 0 {
		t.Errorf("expected no repository writes, got %d", priceRepo.CreateCallCount)
	}
}

func TestPriceFeed_FillsCacheOnStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	cache := NewMockPriceCache()
	svc := service.NewPriceFeedService(NewMockFuelPriceRepository(), cache, nil, service.PriceFeedOptions{
		FeedURL:      server.URL,
		Timeout:      2 * time.Second,
		RetryBackoff: time.Millisecond,
	})

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.SetCallCount != 2 {
		t.Errorf("expected 2 cache fills, got %d", cache.SetCallCount)
	}
}
