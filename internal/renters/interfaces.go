package renters

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the storage contract for renters
type RepositoryInterface interface {
	Create(ctx context.Context, r *Renter) error
	GetByID(ctx context.Context, id uuid.UUID) (*Renter, error)
	List(ctx context.Context, search string, limit, offset int) ([]Renter, int64, error)
	Update(ctx context.Context, r *Renter) error

	// GetStats sums the renter's non-cancelled completed orders.
	GetStats(ctx context.Context, renterID uuid.UUID) (*Stats, error)
}
