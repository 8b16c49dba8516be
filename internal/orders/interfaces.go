package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/motorent/fleet-api/internal/tariffs"
)

// RepositoryInterface defines the storage contract for orders
type RepositoryInterface interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, officeID, renterID uuid.UUID, status OrderStatus, limit, offset int) ([]Order, int64, error)
	Update(ctx context.Context, o *Order) error

	// Vehicle state the lifecycle touches
	GetVehicleRef(ctx context.Context, vehicleID uuid.UUID) (*VehicleRef, error)
	SetVehicleStatus(ctx context.Context, vehicleID uuid.UUID, status string) error
	SetVehicleMileage(ctx context.Context, vehicleID uuid.UUID, mileage int) error

	RenterExists(ctx context.Context, renterID uuid.UUID) (bool, error)
}

// TariffResolver resolves the price pair for a rental length
type TariffResolver interface {
	QuoteFor(ctx context.Context, modelID uuid.UUID, rentalDays int) (*tariffs.Quote, error)
}
