package fleet

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the storage contract for the fleet directory
type RepositoryInterface interface {
	// Offices
	CreateOffice(ctx context.Context, o *Office) error
	GetOfficeByID(ctx context.Context, id uuid.UUID) (*Office, error)
	ListOffices(ctx context.Context, includeInactive bool) ([]Office, error)
	UpdateOffice(ctx context.Context, o *Office) error

	// Models
	CreateModel(ctx context.Context, m *VehicleModel) error
	GetModelByID(ctx context.Context, id uuid.UUID) (*VehicleModel, error)
	ListModels(ctx context.Context) ([]VehicleModel, error)
	DeleteModel(ctx context.Context, id uuid.UUID) error
	CountVehiclesByModel(ctx context.Context, modelID uuid.UUID) (int64, error)

	// Vehicles
	CreateVehicle(ctx context.Context, v *Vehicle) error
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	ListVehicles(ctx context.Context, officeID uuid.UUID, status VehicleStatus, limit, offset int) ([]Vehicle, int64, error)
	UpdateVehicle(ctx context.Context, v *Vehicle) error
	UpdateVehicleMileage(ctx context.Context, vehicleID uuid.UUID, mileage int) error
	UpdateVehicleStatus(ctx context.Context, vehicleID uuid.UUID, status VehicleStatus) error
}
