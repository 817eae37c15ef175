package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tripcost/internal/domain"
	"tripcost/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount  int32
	GetByIDCallCount int32

	// Error injection
	CreateError  error
	GetByIDError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK FUEL PRICE REPOSITORY
// ──────────────────────────────────────────────

// MockFuelPriceRepository is a mock implementation of FuelPriceRepository.
type MockFuelPriceRepository struct {
	mu     sync.RWMutex
	latest map[domain.FuelType]*domain.FuelPrice
	all    []*domain.FuelPrice

	// Counters for verification
	CreateCallCount    int32
	GetLatestCallCount int32

	// Error injection
	CreateError    error
	GetLatestError error
}

// NewMockFuelPriceRepository creates a new mock fuel price repository.
func NewMockFuelPriceRepository() *MockFuelPriceRepository {
	return &MockFuelPriceRepository{
		latest: make(map[domain.FuelType]*domain.FuelPrice),
	}
}

// SetPrice stores a quote as the latest for its fuel type.
func (m *MockFuelPriceRepository) SetPrice(price *domain.FuelPrice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest[price.FuelType] = price
	m.all = append(m.all, price)
}

func (m *MockFuelPriceRepository) Create(ctx context.Context, price *domain.FuelPrice) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest[price.FuelType] = price
	m.all = append(m.all, price)
	return nil
}

func (m *MockFuelPriceRepository) GetLatestByFuelType(ctx context.Context, fuelType domain.FuelType) (*domain.FuelPrice, error) {
	atomic.AddInt32(&m.GetLatestCallCount, 1)
	if m.GetLatestError != nil {
		return nil, m.GetLatestError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	price, ok := m.latest[fuelType]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *price
	return &copy, nil
}

func (m *MockFuelPriceRepository) ListLatest(ctx context.Context, limit int) ([]*domain.FuelPrice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.FuelPrice, 0, len(m.latest))
	for _, p := range m.latest {
		copy := *p
		result = append(result, &copy)
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// StoredQuotes returns all quotes ever created, for test assertions.
func (m *MockFuelPriceRepository) StoredQuotes() []*domain.FuelPrice {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.FuelPrice{}, m.all...)
}

// ──────────────────────────────────────────────
// MOCK MAINTENANCE REPOSITORY
// ──────────────────────────────────────────────

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mu        sync.RWMutex
	events    map[string][]*domain.MaintenanceEvent
	templates []*domain.MaintenanceTemplate

	// Counters for verification
	ListEventsCallCount    int32
	ListTemplatesCallCount int32

	// Error injection
	ListEventsError    error
	ListTemplatesError error
}

// NewMockMaintenanceRepository creates a new mock maintenance repository.
func NewMockMaintenanceRepository() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{
		events: make(map[string][]*domain.MaintenanceEvent),
	}
}

// AddEvent adds a maintenance event to the mock repository.
func (m *MockMaintenanceRepository) AddEvent(event *domain.MaintenanceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.VehicleID] = append(m.events[event.VehicleID], event)
}

// AddTemplate adds a maintenance template to the mock repository.
func (m *MockMaintenanceRepository) AddTemplate(template *domain.MaintenanceTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates = append(m.templates, template)
}

func (m *MockMaintenanceRepository) CreateEvent(ctx context.Context, event *domain.MaintenanceEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.VehicleID] = append(m.events[event.VehicleID], event)
	return nil
}

func (m *MockMaintenanceRepository) ListEventsByVehicle(ctx context.Context, vehicleID string) ([]*domain.MaintenanceEvent, error) {
	atomic.AddInt32(&m.ListEventsCallCount, 1)
	if m.ListEventsError != nil {
		return nil, m.ListEventsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.MaintenanceEvent{}, m.events[vehicleID]...), nil
}

func (m *MockMaintenanceRepository) ListTemplates(ctx context.Context, powertrain domain.Powertrain, segment string) ([]*domain.MaintenanceTemplate, error) {
	atomic.AddInt32(&m.ListTemplatesCallCount, 1)
	if m.ListTemplatesError != nil {
		return nil, m.ListTemplatesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.MaintenanceTemplate
	for _, t := range m.templates {
		if t.Powertrain == powertrain && t.Segment == segment {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockMaintenanceRepository) ListTemplatesByPowertrain(ctx context.Context, powertrain domain.Powertrain) ([]*domain.MaintenanceTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.MaintenanceTemplate
	for _, t := range m.templates {
		if t.Powertrain == powertrain {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockMaintenanceRepository) CreateTemplate(ctx context.Context, template *domain.MaintenanceTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates = append(m.templates, template)
	return nil
}

// ──────────────────────────────────────────────
// MOCK DEPRECIATION MODEL REPOSITORY
// ──────────────────────────────────────────────

// MockDepreciationModelRepository is a mock implementation of
// DepreciationModelRepository.
type MockDepreciationModelRepository struct {
	mu     sync.RWMutex
	models []*domain.DepreciationModel

	// Error injection
	GetError error
}

// NewMockDepreciationModelRepository creates a new mock depreciation model
// repository.
func NewMockDepreciationModelRepository() *MockDepreciationModelRepository {
	return &MockDepreciationModelRepository{}
}

// AddModel adds a depreciation model to the mock repository.
func (m *MockDepreciationModelRepository) AddModel(model *domain.DepreciationModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = append(m.models, model)
}

func (m *MockDepreciationModelRepository) Create(ctx context.Context, model *domain.DepreciationModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = append(m.models, model)
	return nil
}

func (m *MockDepreciationModelRepository) GetByPowertrainAndSegment(ctx context.Context, powertrain domain.Powertrain, segment string) (*domain.DepreciationModel, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, model := range m.models {
		if model.Powertrain == powertrain && model.Segment == segment {
			copy := *model
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDepreciationModelRepository) GetByPowertrain(ctx context.Context, powertrain domain.Powertrain) (*domain.DepreciationModel, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, model := range m.models {
		if model.Powertrain == powertrain {
			copy := *model
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK INSURANCE POLICY REPOSITORY
// ──────────────────────────────────────────────

// MockInsurancePolicyRepository is a mock implementation of
// InsurancePolicyRepository.
type MockInsurancePolicyRepository struct {
	mu       sync.RWMutex
	policies map[string][]*domain.InsurancePolicy

	// Error injection
	CreateError error
}

// NewMockInsurancePolicyRepository creates a new mock insurance policy
// repository.
func NewMockInsurancePolicyRepository() *MockInsurancePolicyRepository {
	return &MockInsurancePolicyRepository{
		policies: make(map[string][]*domain.InsurancePolicy),
	}
}

func (m *MockInsurancePolicyRepository) Create(ctx context.Context, policy *domain.InsurancePolicy) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[policy.VehicleID] = append(m.policies[policy.VehicleID], policy)
	return nil
}

func (m *MockInsurancePolicyRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.InsurancePolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.InsurancePolicy{}, m.policies[vehicleID]...), nil
}

// ──────────────────────────────────────────────
// MOCK PRICE CACHE
// ──────────────────────────────────────────────

// MockPriceCache is an in-memory implementation of PriceCacheInterface.
type MockPriceCache struct {
	mu     sync.RWMutex
	quotes map[domain.FuelType]*domain.FuelPrice

	// Counters for verification
	GetCallCount int32
	SetCallCount int32
	HitCount     int32

	// Error injection
	GetError error
	SetError error
}

// NewMockPriceCache creates a new mock price cache.
func NewMockPriceCache() *MockPriceCache {
	return &MockPriceCache{
		quotes: make(map[domain.FuelType]*domain.FuelPrice),
	}
}

func (m *MockPriceCache) GetLatest(ctx context.Context, fuelType domain.FuelType) (*domain.FuelPrice, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	price, ok := m.quotes[fuelType]
	if !ok {
		return nil, nil // cache miss
	}
	atomic.AddInt32(&m.HitCount, 1)
	copy := *price
	return &copy, nil
}

func (m *MockPriceCache) SetLatest(ctx context.Context, price *domain.FuelPrice) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[price.FuelType] = price
	return nil
}

func (m *MockPriceCache) Invalidate(ctx context.Context, fuelType domain.FuelType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.quotes, fuelType)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu   sync.Mutex
	held bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{}
}

func (m *MockLockStore) AcquireRefreshLock(ctx context.Context, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held {
		return false, nil
	}
	m.held = true
	return true, nil
}

func (m *MockLockStore) ReleaseRefreshLock(ctx context.Context) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = false
	return nil
}

// HoldLock marks the lock as already held, for contention tests.
func (m *MockLockStore) HoldLock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = true
}
