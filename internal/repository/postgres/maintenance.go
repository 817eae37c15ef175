package postgres

import (
	"context"
	"database/sql"

	"tripcost/internal/domain"
)

// MaintenanceRepository is a PostgreSQL implementation of repository.MaintenanceRepository.
type MaintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{q: db}
}

// CreateEvent persists a new maintenance event.
func (r *MaintenanceRepository) CreateEvent(ctx context.Context, event *domain.MaintenanceEvent) error {
	query := `
		INSERT INTO maintenance_events (id, vehicle_id, category, event_date, odometer_km, cost_eur, workshop, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var eventDate sql.NullTime
	if event.EventDate != nil {
		eventDate = sql.NullTime{Time: *event.EventDate, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		event.ID,
		event.VehicleID,
		event.Category,
		eventDate,
		nullFloat(event.OdometerKm),
		event.CostEUR,
		nullString(event.Workshop),
		nullString(event.Notes),
	)

	return err
}

// ListEventsByVehicle retrieves all maintenance events for a vehicle,
// most recent first.
func (r *MaintenanceRepository) ListEventsByVehicle(ctx context.Context, vehicleID string) ([]*domain.MaintenanceEvent, error) {
	query := `
		SELECT id, vehicle_id, category, event_date, odometer_km, cost_eur, workshop, notes
		FROM maintenance_events WHERE vehicle_id = $1
		ORDER BY event_date DESC NULLS LAST
	`

	rows, err := r.q.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.MaintenanceEvent
	for rows.Next() {
		var (
			event     domain.MaintenanceEvent
			eventDate sql.NullTime
			odometer  sql.NullFloat64
			workshop  sql.NullString
			notes     sql.NullString
		)
		if err := rows.Scan(
			&event.ID,
			&event.VehicleID,
			&event.Category,
			&eventDate,
			&odometer,
			&event.CostEUR,
			&workshop,
			&notes,
		); err != nil {
			return nil, err
		}
		if eventDate.Valid {
			t := eventDate.Time
			event.EventDate = &t
		}
		event.OdometerKm = floatPtr(odometer)
		event.Workshop = workshop.String
		event.Notes = notes.String
		events = append(events, &event)
	}
	return events, rows.Err()
}

// CreateTemplate persists a new maintenance template.
func (r *MaintenanceRepository) CreateTemplate(ctx context.Context, template *domain.MaintenanceTemplate) error {
	query := `
		INSERT INTO maintenance_templates (id, powertrain_type, segment, category, cost_eur, every_km, every_months)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		template.ID,
		string(template.Powertrain),
		template.Segment,
		template.Category,
		template.CostEUR,
		nullFloat(template.EveryKm),
		nullInt(template.EveryMonths),
	)

	return err
}

// ListTemplates retrieves templates matching powertrain and segment exactly.
func (r *MaintenanceRepository) ListTemplates(ctx context.Context, powertrain domain.Powertrain, segment string) ([]*domain.MaintenanceTemplate, error) {
	query := `
		SELECT id, powertrain_type, segment, category, cost_eur, every_km, every_months
		FROM maintenance_templates WHERE powertrain_type = $1 AND segment = $2
	`
	return r.queryTemplates(ctx, query, string(powertrain), segment)
}

// ListTemplatesByPowertrain retrieves templates matching powertrain only.
func (r *MaintenanceRepository) ListTemplatesByPowertrain(ctx context.Context, powertrain domain.Powertrain) ([]*domain.MaintenanceTemplate, error) {
	query := `
		SELECT id, powertrain_type, segment, category, cost_eur, every_km, every_months
		FROM maintenance_templates WHERE powertrain_type = $1
	`
	return r.queryTemplates(ctx, query, string(powertrain))
}

func (r *MaintenanceRepository) queryTemplates(ctx context.Context, query string, args ...any) ([]*domain.MaintenanceTemplate, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.MaintenanceTemplate
	for rows.Next() {
		var (
			template domain.MaintenanceTemplate
			everyKm  sql.NullFloat64
			months   sql.NullInt64
		)
		if err := rows.Scan(
			&template.ID,
			&template.Powertrain,
			&template.Segment,
			&template.Category,
			&template.CostEUR,
			&everyKm,
			&months,
		); err != nil {
			return nil, err
		}
		template.EveryKm = floatPtr(everyKm)
		if months.Valid {
			m := int(months.Int64)
			template.EveryMonths = &m
		}
		templates = append(templates, &template)
	}
	return templates, rows.Err()
}
