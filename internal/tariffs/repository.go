package tariffs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for tariffs
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new tariffs repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create creates a new tariff
func (r *Repository) Create(ctx context.Context, t *Tariff) error {
	query := `
		INSERT INTO tariffs (id, model_id, period_type, min_period, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	t.ID = uuid.New()
	err := r.db.QueryRow(ctx, query, t.ID, t.ModelID, t.PeriodType, t.MinPeriod, t.Price).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tariff: %w", err)
	}
	return nil
}

// GetByID retrieves a tariff by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Tariff, error) {
	query := `
		SELECT id, model_id, period_type, min_period, price, created_at, updated_at
		FROM tariffs WHERE id = $1
	`
	t := &Tariff{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ModelID, &t.PeriodType, &t.MinPeriod, &t.Price, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByModel lists a model's tariff ladder, hourly first then daily rungs
func (r *Repository) ListByModel(ctx context.Context, modelID uuid.UUID) ([]Tariff, error) {
	query := `
		SELECT id, model_id, period_type, min_period, price, created_at, updated_at
		FROM tariffs
		WHERE model_id = $1
		ORDER BY period_type, min_period
	`
	rows, err := r.db.Query(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tariffs: %w", err)
	}
	defer rows.Close()

	tariffs := []Tariff{}
	for rows.Next() {
		var t Tariff
		if err := rows.Scan(&t.ID, &t.ModelID, &t.PeriodType, &t.MinPeriod, &t.Price, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tariff: %w", err)
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}

// Update updates a tariff price
func (r *Repository) Update(ctx context.Context, t *Tariff) error {
	query := `
		UPDATE tariffs SET price = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, t.ID, t.Price).Scan(&t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update tariff: %w", err)
	}
	return nil
}

// Delete deletes a tariff
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tariffs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tariff: %w", err)
	}
	return nil
}

// ResolveDaily picks the highest ladder rung that the rental length reaches
func (r *Repository) ResolveDaily(ctx context.Context, modelID uuid.UUID, rentalDays int) (*Tariff, error) {
	query := `
		SELECT id, model_id, period_type, min_period, price, created_at, updated_at
		FROM tariffs
		WHERE model_id = $1 AND period_type = 'day' AND min_period <= $2
		ORDER BY min_period DESC
		LIMIT 1
	`
	t := &Tariff{}
	err := r.db.QueryRow(ctx, query, modelID, rentalDays).Scan(
		&t.ID, &t.ModelID, &t.PeriodType, &t.MinPeriod, &t.Price, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ResolveHourly returns the model's hourly tariff
func (r *Repository) ResolveHourly(ctx context.Context, modelID uuid.UUID) (*Tariff, error) {
	query := `
		SELECT id, model_id, period_type, min_period, price, created_at, updated_at
		FROM tariffs
		WHERE model_id = $1 AND period_type = 'hour'
		ORDER BY min_period
		LIMIT 1
	`
	t := &Tariff{}
	err := r.db.QueryRow(ctx, query, modelID).Scan(
		&t.ID, &t.ModelID, &t.PeriodType, &t.MinPeriod, &t.Price, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
