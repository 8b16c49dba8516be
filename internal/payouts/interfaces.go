package payouts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RepositoryInterface defines the storage contract for payouts
type RepositoryInterface interface {
	// CreatePayout writes the payout and its lines atomically.
	CreatePayout(ctx context.Context, p *Payout) error
	GetPayoutByID(ctx context.Context, id uuid.UUID) (*Payout, error)
	ListPayouts(ctx context.Context, officeID uuid.UUID, limit, offset int) ([]Payout, int64, error)

	// GetOfficeSalary reads the office's split parameters.
	GetOfficeSalary(ctx context.Context, officeID uuid.UUID) (*OfficeSalary, error)
	// ManagerRevenues sums order totals per manager for the period,
	// skipping draft and cancelled orders.
	ManagerRevenues(ctx context.Context, officeID uuid.UUID, from, to time.Time) ([]ManagerRevenue, error)
}
