package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for the service catalog
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new catalog repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateServiceType creates a new service type
func (r *Repository) CreateServiceType(ctx context.Context, st *ServiceType) error {
	query := `
		INSERT INTO service_types (id, name, default_cost, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	st.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		st.ID, st.Name, st.DefaultCost, st.IsActive,
	).Scan(&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service type: %w", err)
	}
	return nil
}

// GetServiceTypeByID retrieves a service type by ID
func (r *Repository) GetServiceTypeByID(ctx context.Context, id uuid.UUID) (*ServiceType, error) {
	query := `
		SELECT id, name, default_cost, is_active, created_at, updated_at
		FROM service_types WHERE id = $1
	`
	st := &ServiceType{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.Name, &st.DefaultCost, &st.IsActive, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ListServiceTypes lists service types with pagination
func (r *Repository) ListServiceTypes(ctx context.Context, includeInactive bool, limit, offset int) ([]ServiceType, int64, error) {
	whereClause := ""
	if !includeInactive {
		whereClause = "WHERE is_active = true"
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM service_types %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count service types: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, default_cost, is_active, created_at, updated_at
		FROM service_types %s
		ORDER BY name
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service types: %w", err)
	}
	defer rows.Close()

	items := make([]ServiceType, 0)
	for rows.Next() {
		var st ServiceType
		err := rows.Scan(&st.ID, &st.Name, &st.DefaultCost, &st.IsActive, &st.CreatedAt, &st.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan service type: %w", err)
		}
		items = append(items, st)
	}
	return items, total, nil
}

// UpdateServiceType updates a service type
func (r *Repository) UpdateServiceType(ctx context.Context, st *ServiceType) error {
	query := `
		UPDATE service_types SET
			name = $2, default_cost = $3, is_active = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, st.ID, st.Name, st.DefaultCost, st.IsActive).Scan(&st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update service type: %w", err)
	}
	return nil
}

// DeleteServiceType hard-deletes a service type. Callers must check
// references first; the schema also enforces this with RESTRICT constraints.
func (r *Repository) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM service_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service type: %w", err)
	}
	return nil
}

// CountReferences counts maintenance plan entries and log cost lines that
// point at the service type.
func (r *Repository) CountReferences(ctx context.Context, serviceTypeID uuid.UUID) (int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM maintenance_plans WHERE service_type_id = $1) +
			(SELECT COUNT(*) FROM maintenance_cost_lines WHERE service_type_id = $1)
	`
	var total int64
	if err := r.db.QueryRow(ctx, query, serviceTypeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count service type references: %w", err)
	}
	return total, nil
}
