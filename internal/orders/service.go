package orders

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
	defaultListLimit = 50
	maxListLimit     = 200
	maxRentalHours   = 23
)

// Service handles order lifecycle business logic
type Service struct {
	repo    RepositoryInterface
	tariffs TariffResolver
	bus     *eventbus.Bus // nil disables event publishing
	now     func() time.Time
}

// NewService creates a new orders service
func NewService(repo RepositoryInterface, resolver TariffResolver, bus *eventbus.Bus) *Service {
	return &Service{repo: repo, tariffs: resolver, bus: bus, now: time.Now}
}

// Create drafts an order. The daily and hourly prices are resolved from the
// vehicle model's tariff ladder and snapshotted onto the order.
func (s *Service) Create(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	if req.RentalDays < 1 {
		return nil, common.NewValidationError("rental length must be at least 1 day")
	}
	if req.RentalHours < 0 || req.RentalHours > maxRentalHours {
		return nil, common.NewValidationError("rental hours must be between 0 and 23")
	}
	if req.ExtraExpenses < 0 || req.Deposit < 0 {
		return nil, common.NewValidationError("amounts cannot be negative")
	}

	v, err := s.getVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if v.Status == "inactive" {
		return nil, common.NewConflictError("vehicle is not in the working fleet")
	}

	exists, err := s.repo.RenterExists(ctx, req.RenterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.NewNotFoundError("renter not found", nil)
	}

	quote, err := s.tariffs.QuoteFor(ctx, v.ModelID, req.RentalDays)
	if err != nil {
		return nil, err
	}

	o := &Order{
		OfficeID:      v.OfficeID,
		VehicleID:     req.VehicleID,
		RenterID:      req.RenterID,
		ManagerID:     req.ManagerID,
		RentalDays:    req.RentalDays,
		RentalHours:   req.RentalHours,
		StartDate:     req.StartDate,
		EndDate:       ComputeEndDate(req.StartDate, req.RentalDays, req.RentalHours),
		TariffID:      quote.DailyTariff.ID,
		TariffPrice:   quote.DailyTariff.Price,
		HourlyPrice:   quote.HourlyPrice,
		ExtraExpenses: req.ExtraExpenses,
		Deposit:       req.Deposit,
		Total:         ComputeTotal(req.RentalDays, req.RentalHours, quote.DailyTariff.Price, quote.HourlyPrice, req.ExtraExpenses),
		Status:        StatusDraft,
		Note:          req.Note,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, eventbus.SubjectOrderCreated, eventbus.OrderCreatedData{
		OrderID:   o.ID,
		OfficeID:  o.OfficeID,
		VehicleID: o.VehicleID,
		RenterID:  o.RenterID,
		StartDate: o.StartDate,
		EndDate:   o.EndDate,
		CreatedAt: o.CreatedAt,
	})
	return o, nil
}

// Get returns an order by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("order not found", nil)
		}
		return nil, err
	}
	return o, nil
}

// List returns a page of orders with optional filters
func (s *Service) List(ctx context.Context, officeID, renterID uuid.UUID, status OrderStatus, limit, offset int) (*OrderListResponse, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	orders, total, err := s.repo.List(ctx, officeID, renterID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return &OrderListResponse{Orders: orders}, total, nil
}

// Update adjusts a draft order and reprices it. Orders past draft are frozen.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateOrderRequest) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusDraft {
		return nil, common.NewConflictError("only draft orders can be edited")
	}

	if req.StartDate != nil {
		o.StartDate = *req.StartDate
	}
	if req.RentalDays != nil {
		if *req.RentalDays < 1 {
			return nil, common.NewValidationError("rental length must be at least 1 day")
		}
		o.RentalDays = *req.RentalDays
	}
	if req.RentalHours != nil {
		if *req.RentalHours < 0 || *req.RentalHours > maxRentalHours {
			return nil, common.NewValidationError("rental hours must be between 0 and 23")
		}
		o.RentalHours = *req.RentalHours
	}
	if req.ExtraExpenses != nil {
		if *req.ExtraExpenses < 0 {
			return nil, common.NewValidationError("amounts cannot be negative")
		}
		o.ExtraExpenses = *req.ExtraExpenses
	}
	if req.Deposit != nil {
		if *req.Deposit < 0 {
			return nil, common.NewValidationError("amounts cannot be negative")
		}
		o.Deposit = *req.Deposit
	}
	if req.Note != nil {
		o.Note = *req.Note
	}

	// Rental length changes can move the order onto a different tariff rung.
	if req.RentalDays != nil {
		v, err := s.getVehicle(ctx, o.VehicleID)
		if err != nil {
			return nil, err
		}
		quote, err := s.tariffs.QuoteFor(ctx, v.ModelID, o.RentalDays)
		if err != nil {
			return nil, err
		}
		o.TariffID = quote.DailyTariff.ID
		o.TariffPrice = quote.DailyTariff.Price
		o.HourlyPrice = quote.HourlyPrice
	}

	o.EndDate = ComputeEndDate(o.StartDate, o.RentalDays, o.RentalHours)
	o.Total = ComputeTotal(o.RentalDays, o.RentalHours, o.TariffPrice, o.HourlyPrice, o.ExtraExpenses)

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// Start hands the vehicle over: draft becomes active, the start odometer is
// snapshotted and the vehicle is marked rented.
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusDraft {
		return nil, common.NewConflictError(fmt.Sprintf("cannot start an order in status %q", o.Status))
	}

	v, err := s.getVehicle(ctx, o.VehicleID)
	if err != nil {
		return nil, err
	}
	if v.Status != "available" && v.Status != "booked" {
		return nil, common.NewConflictError(fmt.Sprintf("vehicle is %s", v.Status))
	}

	startMileage := v.Mileage
	o.StartMileage = &startMileage
	o.Status = StatusActive
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("start order: %w", err)
	}
	if err := s.repo.SetVehicleStatus(ctx, o.VehicleID, "rented"); err != nil {
		return nil, fmt.Errorf("start order: %w", err)
	}

	s.publish(ctx, eventbus.SubjectOrderStarted, eventbus.OrderStartedData{
		OrderID:      o.ID,
		VehicleID:    o.VehicleID,
		RenterID:     o.RenterID,
		StartMileage: startMileage,
		StartedAt:    s.now().UTC(),
	})
	return o, nil
}

// Complete closes an active order. The vehicle odometer moves to the end
// reading unless it is already further along, and the vehicle returns to
// the available pool.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, req *CompleteOrderRequest) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusActive {
		return nil, common.NewConflictError(fmt.Sprintf("cannot complete an order in status %q", o.Status))
	}
	if o.StartMileage != nil && req.EndMileage < *o.StartMileage {
		return nil, common.NewValidationError(
			fmt.Sprintf("end mileage cannot be below the start reading of %d km", *o.StartMileage),
		)
	}

	v, err := s.getVehicle(ctx, o.VehicleID)
	if err != nil {
		return nil, err
	}

	endMileage := req.EndMileage
	o.EndMileage = &endMileage
	o.Status = StatusDone
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	if endMileage > v.Mileage {
		if err := s.repo.SetVehicleMileage(ctx, o.VehicleID, endMileage); err != nil {
			return nil, fmt.Errorf("complete order: %w", err)
		}
	}
	if err := s.repo.SetVehicleStatus(ctx, o.VehicleID, "available"); err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	s.publish(ctx, eventbus.SubjectOrderCompleted, eventbus.OrderCompletedData{
		OrderID:     o.ID,
		VehicleID:   o.VehicleID,
		RenterID:    o.RenterID,
		EndMileage:  endMileage,
		Total:       o.Total,
		CompletedAt: s.now().UTC(),
	})
	return o, nil
}

// Cancel voids a draft or active order. An active order's vehicle goes back
// to the available pool.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusDraft && o.Status != StatusActive {
		return nil, common.NewConflictError(fmt.Sprintf("cannot cancel an order in status %q", o.Status))
	}

	fromStatus := o.Status
	o.Status = StatusCancelled
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	if fromStatus == StatusActive {
		if err := s.repo.SetVehicleStatus(ctx, o.VehicleID, "available"); err != nil {
			return nil, fmt.Errorf("cancel order: %w", err)
		}
	}

	s.publish(ctx, eventbus.SubjectOrderCancelled, eventbus.OrderCancelledData{
		OrderID:     o.ID,
		VehicleID:   o.VehicleID,
		FromStatus:  string(fromStatus),
		CancelledAt: s.now().UTC(),
	})
	return o, nil
}

func (s *Service) getVehicle(ctx context.Context, vehicleID uuid.UUID) (*VehicleRef, error) {
	v, err := s.repo.GetVehicleRef(ctx, vehicleID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("vehicle not found", nil)
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) publish(ctx context.Context, subject string, data interface{}) {
	if s.bus == nil {
		return
	}

	event, err := eventbus.NewEvent(subject, "fleet-api", data)
	if err != nil {
		logger.WarnContext(ctx, "failed to build order event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "failed to publish order event", zap.String("subject", subject), zap.Error(err))
	}
}
