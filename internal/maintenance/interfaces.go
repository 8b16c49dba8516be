package maintenance

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the storage contract for the maintenance feature.
// The projection input reads take optional office/vehicle filters; uuid.Nil
// means unfiltered.
type RepositoryInterface interface {
	// Plans
	CreatePlan(ctx context.Context, p *PlanEntry) error
	GetPlanByID(ctx context.Context, id uuid.UUID) (*PlanEntry, error)
	ListPlansByModel(ctx context.Context, modelID uuid.UUID) ([]PlanEntry, error)
	UpdatePlan(ctx context.Context, p *PlanEntry) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
	ModelExists(ctx context.Context, modelID uuid.UUID) (bool, error)

	// Logs
	CreateLog(ctx context.Context, l *LogEntry) error
	GetLogByID(ctx context.Context, id uuid.UUID) (*LogEntry, error)
	ListLogsByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]LogEntry, int64, error)

	// Projection inputs
	GetVehicleSnapshot(ctx context.Context, vehicleID uuid.UUID) (*VehicleSnapshot, error)
	ListVehicleSnapshots(ctx context.Context, officeID, vehicleID uuid.UUID) ([]VehicleSnapshot, error)
	ListPlans(ctx context.Context) ([]PlanEntry, error)
	ListServiceEvents(ctx context.Context, officeID, vehicleID uuid.UUID) ([]ServiceEvent, error)
	ListServiceTypeRefs(ctx context.Context) ([]ServiceTypeRef, error)
	GetServiceTypeRef(ctx context.Context, id uuid.UUID) (*ServiceTypeRef, error)
}
