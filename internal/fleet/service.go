package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/motorent/fleet-api/pkg/common"
	"github.com/motorent/fleet-api/pkg/eventbus"
	"github.com/motorent/fleet-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	minVehicleYear           = 1990
	defaultOfficeFixedUSD    = 150
	defaultOfficePercentRate = 30
)

// Service handles fleet business logic
type Service struct {
	repo RepositoryInterface
	bus  *eventbus.Bus // nil disables event publishing
}

// NewService creates a new fleet service
func NewService(repo RepositoryInterface, bus *eventbus.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// ========================================
// OFFICES
// ========================================

// CreateOffice creates a new office
func (s *Service) CreateOffice(ctx context.Context, req *CreateOfficeRequest) (*Office, error) {
	if req.SalaryPercent < 0 || req.SalaryPercent > 100 {
		return nil, common.NewValidationError("salary percent must be between 0 and 100")
	}
	if req.SalaryFixedUSD < 0 {
		return nil, common.NewValidationError("fixed salary cannot be negative")
	}

	fixed := req.SalaryFixedUSD
	if fixed == 0 {
		fixed = defaultOfficeFixedUSD
	}
	percent := req.SalaryPercent
	if percent == 0 {
		percent = defaultOfficePercentRate
	}

	o := &Office{
		Name:           req.Name,
		City:           req.City,
		Country:        req.Country,
		Currency:       req.Currency,
		SalaryFixedUSD: fixed,
		SalaryPercent:  percent,
		IsActive:       true,
	}

	if err := s.repo.CreateOffice(ctx, o); err != nil {
		return nil, fmt.Errorf("create office: %w", err)
	}
	return o, nil
}

// GetOffice returns an office by ID
func (s *Service) GetOffice(ctx context.Context, id uuid.UUID) (*Office, error) {
	o, err := s.repo.GetOfficeByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("office not found", nil)
		}
		return nil, err
	}
	return o, nil
}

// ListOffices returns all offices
func (s *Service) ListOffices(ctx context.Context, includeInactive bool) ([]Office, error) {
	return s.repo.ListOffices(ctx, includeInactive)
}

// UpdateOffice applies a partial update to an office
func (s *Service) UpdateOffice(ctx context.Context, id uuid.UUID, req *UpdateOfficeRequest) (*Office, error) {
	o, err := s.GetOffice(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.City != nil {
		o.City = *req.City
	}
	if req.Country != nil {
		o.Country = *req.Country
	}
	if req.Currency != nil {
		if len(*req.Currency) != 3 {
			return nil, common.NewValidationError("currency must be a 3-letter code")
		}
		o.Currency = *req.Currency
	}
	if req.SalaryFixedUSD != nil {
		if *req.SalaryFixedUSD < 0 {
			return nil, common.NewValidationError("fixed salary cannot be negative")
		}
		o.SalaryFixedUSD = *req.SalaryFixedUSD
	}
	if req.SalaryPercent != nil {
		if *req.SalaryPercent < 0 || *req.SalaryPercent > 100 {
			return nil, common.NewValidationError("salary percent must be between 0 and 100")
		}
		o.SalaryPercent = *req.SalaryPercent
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateOffice(ctx, o); err != nil {
		return nil, fmt.Errorf("update office: %w", err)
	}
	return o, nil
}

// ========================================
// MODELS
// ========================================

// CreateModel creates a new vehicle model
func (s *Service) CreateModel(ctx context.Context, req *CreateModelRequest) (*VehicleModel, error) {
	m := &VehicleModel{
		Manufacturer: req.Manufacturer,
		Name:         req.Name,
		VehicleType:  req.VehicleType,
		Transmission: req.Transmission,
	}

	if err := s.repo.CreateModel(ctx, m); err != nil {
		return nil, fmt.Errorf("create vehicle model: %w", err)
	}
	return m, nil
}

// GetModel returns a vehicle model by ID
func (s *Service) GetModel(ctx context.Context, id uuid.UUID) (*VehicleModel, error) {
	m, err := s.repo.GetModelByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("vehicle model not found", nil)
		}
		return nil, err
	}
	return m, nil
}

// ListModels returns all vehicle models
func (s *Service) ListModels(ctx context.Context) ([]VehicleModel, error) {
	return s.repo.ListModels(ctx)
}

// DeleteModel deletes a vehicle model. Its maintenance plan entries cascade;
// deletion is rejected while vehicles of the model exist.
func (s *Service) DeleteModel(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetModel(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountVehiclesByModel(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return common.NewConflictError("vehicles of this model still exist")
	}

	if err := s.repo.DeleteModel(ctx, id); err != nil {
		return fmt.Errorf("delete vehicle model: %w", err)
	}
	return nil
}

// ========================================
// VEHICLES
// ========================================

// CreateVehicle registers a new vehicle in the fleet
func (s *Service) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*Vehicle, error) {
	currentYear := time.Now().Year()
	if req.Year < minVehicleYear || req.Year > currentYear+1 {
		return nil, common.NewBadRequestError(
			fmt.Sprintf("vehicle year must be between %d and %d", minVehicleYear, currentYear+1), nil,
		)
	}
	if req.Mileage < 0 {
		return nil, common.NewValidationError("mileage cannot be negative")
	}

	if _, err := s.GetModel(ctx, req.ModelID); err != nil {
		return nil, err
	}
	if _, err := s.GetOffice(ctx, req.OfficeID); err != nil {
		return nil, err
	}

	v := &Vehicle{
		ModelID:       req.ModelID,
		OfficeID:      req.OfficeID,
		Plate:         req.Plate,
		Year:          req.Year,
		PurchasePrice: req.PurchasePrice,
		Mileage:       req.Mileage,
		Status:        VehicleStatusAvailable,
	}

	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return v, nil
}

// GetVehicle returns a vehicle by ID
func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	v, err := s.repo.GetVehicleByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("vehicle not found", nil)
		}
		return nil, err
	}
	return v, nil
}

// ListVehicles returns a page of vehicles with optional filters
func (s *Service) ListVehicles(ctx context.Context, officeID uuid.UUID, status VehicleStatus, limit, offset int) (*VehicleListResponse, int64, error) {
	if status != "" && !ValidStatuses[status] {
		return nil, 0, common.NewValidationError("invalid vehicle status filter")
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	vehicles, total, err := s.repo.ListVehicles(ctx, officeID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return &VehicleListResponse{Vehicles: vehicles}, total, nil
}

// UpdateVehicle applies a partial update to vehicle details
func (s *Service) UpdateVehicle(ctx context.Context, id uuid.UUID, req *UpdateVehicleRequest) (*Vehicle, error) {
	v, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ModelID != nil {
		if _, err := s.GetModel(ctx, *req.ModelID); err != nil {
			return nil, err
		}
		v.ModelID = *req.ModelID
	}
	if req.OfficeID != nil {
		if _, err := s.GetOffice(ctx, *req.OfficeID); err != nil {
			return nil, err
		}
		v.OfficeID = *req.OfficeID
	}
	if req.Plate != nil {
		if *req.Plate == "" {
			return nil, common.NewValidationError("plate cannot be empty")
		}
		v.Plate = *req.Plate
	}
	if req.Year != nil {
		currentYear := time.Now().Year()
		if *req.Year < minVehicleYear || *req.Year > currentYear+1 {
			return nil, common.NewBadRequestError(
				fmt.Sprintf("vehicle year must be between %d and %d", minVehicleYear, currentYear+1), nil,
			)
		}
		v.Year = *req.Year
	}
	if req.PurchasePrice != nil {
		v.PurchasePrice = *req.PurchasePrice
	}

	if err := s.repo.UpdateVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return v, nil
}

// UpdateOdometer records a new odometer reading. The odometer never goes
// backwards; readings below the stored value are rejected.
func (s *Service) UpdateOdometer(ctx context.Context, id uuid.UUID, req *UpdateOdometerRequest) (*Vehicle, error) {
	v, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Mileage < v.Mileage {
		return nil, common.NewValidationError(
			fmt.Sprintf("odometer cannot decrease: current reading is %d km", v.Mileage),
		)
	}

	previous := v.Mileage
	if err := s.repo.UpdateVehicleMileage(ctx, id, req.Mileage); err != nil {
		return nil, fmt.Errorf("update odometer: %w", err)
	}
	v.Mileage = req.Mileage

	s.publishOdometerUpdated(ctx, v, previous)
	return v, nil
}

// UpdateStatus changes the vehicle status
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateStatusRequest) (*Vehicle, error) {
	if !ValidStatuses[req.Status] {
		return nil, common.NewValidationError("invalid vehicle status")
	}

	v, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateVehicleStatus(ctx, id, req.Status); err != nil {
		return nil, fmt.Errorf("update vehicle status: %w", err)
	}
	v.Status = req.Status
	return v, nil
}

func (s *Service) publishOdometerUpdated(ctx context.Context, v *Vehicle, previous int) {
	if s.bus == nil {
		return
	}

	event, err := eventbus.NewEvent(eventbus.SubjectOdometerUpdated, "fleet-api", eventbus.OdometerUpdatedData{
		VehicleID:       v.ID,
		PreviousMileage: previous,
		Mileage:         v.Mileage,
		UpdatedAt:       time.Now().UTC(),
	})
	if err != nil {
		logger.WarnContext(ctx, "failed to build odometer event", zap.Error(err))
		return
	}
	if err := s.bus.Publish(ctx, eventbus.SubjectOdometerUpdated, event); err != nil {
		logger.WarnContext(ctx, "failed to publish odometer event",
			zap.String("vehicle_id", v.ID.String()), zap.Error(err))
	}
}
