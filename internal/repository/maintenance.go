package repository

import (
	"context"

	"tripcost/internal/domain"
)

// MaintenanceRepository defines the persistence operations for maintenance
// events and cost templates.
type MaintenanceRepository interface {
	// CreateEvent persists a new maintenance event.
	CreateEvent(ctx context.Context, event *domain.MaintenanceEvent) error

	// ListEventsByVehicle retrieves all maintenance events for a vehicle.
	ListEventsByVehicle(ctx context.Context, vehicleID string) ([]*domain.MaintenanceEvent, error)

	// ListTemplates retrieves templates matching powertrain and segment exactly.
	ListTemplates(ctx context.Context, powertrain domain.Powertrain, segment string) ([]*domain.MaintenanceTemplate, error)

	// ListTemplatesByPowertrain retrieves templates matching powertrain only.
	ListTemplatesByPowertrain(ctx context.Context, powertrain domain.Powertrain) ([]*domain.MaintenanceTemplate, error)

	// CreateTemplate persists a new maintenance template.
	CreateTemplate(ctx context.Context, template *domain.MaintenanceTemplate) error
}
