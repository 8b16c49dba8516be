package tariffs

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the storage contract for tariffs
type RepositoryInterface interface {
	Create(ctx context.Context, t *Tariff) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tariff, error)
	ListByModel(ctx context.Context, modelID uuid.UUID) ([]Tariff, error)
	Update(ctx context.Context, t *Tariff) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveDaily returns the daily tariff with the greatest min period
	// not exceeding the rental length, or pgx.ErrNoRows when the model has
	// no applicable rung.
	ResolveDaily(ctx context.Context, modelID uuid.UUID, rentalDays int) (*Tariff, error)
	// ResolveHourly returns the model's hourly tariff.
	ResolveHourly(ctx context.Context, modelID uuid.UUID) (*Tariff, error)
}
