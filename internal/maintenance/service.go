package maintenance

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
	defaultLogLimit = 50
	maxLogLimit     = 200
)

// Service handles maintenance business logic: plan configuration, the
// service log, the due board, and the perform-service action.
type Service struct {
	repo RepositoryInterface
	bus  *eventbus.Bus // nil disables event publishing
	now  func() time.Time
}

// NewService creates a new maintenance service
func NewService(repo RepositoryInterface, bus *eventbus.Bus) *Service {
	return &Service{repo: repo, bus: bus, now: time.Now}
}

// ========================================
// PLANS
// ========================================

// CreatePlan creates a plan entry for a (model, service type) pair.
// Negative intervals or thresholds never reach the board; they are
// rejected here.
func (s *Service) CreatePlan(ctx context.Context, req *CreatePlanRequest) (*PlanEntry, error) {
	if err := validateIntervals(req.IntervalKm, req.IntervalDays, req.RemindBeforeKm, req.RemindBeforeDays); err != nil {
		return nil, err
	}

	exists, err := s.repo.ModelExists(ctx, req.ModelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.NewNotFoundError("vehicle model not found", nil)
	}
	if _, err := s.resolveServiceType(ctx, req.ServiceTypeID); err != nil {
		return nil, err
	}

	p := &PlanEntry{
		ModelID:          req.ModelID,
		ServiceTypeID:    req.ServiceTypeID,
		IntervalKm:       req.IntervalKm,
		IntervalDays:     req.IntervalDays,
		RemindBeforeKm:   req.RemindBeforeKm,
		RemindBeforeDays: req.RemindBeforeDays,
	}
	if err := s.repo.CreatePlan(ctx, p); err != nil {
		return nil, fmt.Errorf("create maintenance plan: %w", err)
	}
	return p, nil
}

// GetPlan returns a plan entry by ID
func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*PlanEntry, error) {
	p, err := s.repo.GetPlanByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("maintenance plan not found", nil)
		}
		return nil, err
	}
	return p, nil
}

// ListPlansByModel returns the plan entries of one vehicle model
func (s *Service) ListPlansByModel(ctx context.Context, modelID uuid.UUID) ([]PlanEntry, error) {
	return s.repo.ListPlansByModel(ctx, modelID)
}

// UpdatePlan applies a partial update to a plan entry
func (s *Service) UpdatePlan(ctx context.Context, id uuid.UUID, req *UpdatePlanRequest) (*PlanEntry, error) {
	p, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IntervalKm != nil {
		p.IntervalKm = *req.IntervalKm
	}
	if req.IntervalDays != nil {
		p.IntervalDays = *req.IntervalDays
	}
	if req.RemindBeforeKm != nil {
		p.RemindBeforeKm = *req.RemindBeforeKm
	}
	if req.RemindBeforeDays != nil {
		p.RemindBeforeDays = *req.RemindBeforeDays
	}
	if err := validateIntervals(p.IntervalKm, p.IntervalDays, p.RemindBeforeKm, p.RemindBeforeDays); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePlan(ctx, p); err != nil {
		return nil, fmt.Errorf("update maintenance plan: %w", err)
	}
	return p, nil
}

// DeletePlan removes a plan entry
func (s *Service) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPlan(ctx, id); err != nil {
		return err
	}
	return s.repo.DeletePlan(ctx, id)
}

func validateIntervals(intervalKm, intervalDays, remindKm, remindDays int) error {
	if intervalKm < 0 || intervalDays < 0 {
		return common.NewValidationError("intervals cannot be negative")
	}
	if remindKm < 0 || remindDays < 0 {
		return common.NewValidationError("reminder thresholds cannot be negative")
	}
	return nil
}

// ========================================
// LOGS
// ========================================

// CreateLog records a performed service. The odometer reading must be
// positive and must not exceed the vehicle's current recorded reading.
func (s *Service) CreateLog(ctx context.Context, req *CreateLogRequest) (*LogEntry, error) {
	v, err := s.getSnapshot(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if req.Mileage <= 0 {
		return nil, common.NewValidationError("odometer reading must be positive")
	}
	if req.Mileage > v.Mileage {
		return nil, common.NewValidationError(
			fmt.Sprintf("odometer reading exceeds the vehicle's current %d km", v.Mileage),
		)
	}
	if len(req.CostLines) == 0 {
		return nil, common.NewValidationError("at least one cost line is required")
	}

	lines := make([]CostLine, 0, len(req.CostLines))
	for _, cl := range req.CostLines {
		if cl.Cost < 0 {
			return nil, common.NewValidationError("cost cannot be negative")
		}
		if _, err := s.resolveServiceType(ctx, cl.ServiceTypeID); err != nil {
			return nil, err
		}
		lines = append(lines, CostLine{ServiceTypeID: cl.ServiceTypeID, Cost: cl.Cost})
	}

	l := &LogEntry{
		VehicleID: req.VehicleID,
		Date:      req.Date,
		Mileage:   req.Mileage,
		Note:      req.Note,
		CostLines: lines,
	}
	if err := s.repo.CreateLog(ctx, l); err != nil {
		return nil, fmt.Errorf("create maintenance log: %w", err)
	}
	return l, nil
}

// GetLog returns a log entry with its cost lines
func (s *Service) GetLog(ctx context.Context, id uuid.UUID) (*LogEntry, error) {
	l, err := s.repo.GetLogByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("maintenance log not found", nil)
		}
		return nil, err
	}
	return l, nil
}

// ListLogs returns a vehicle's service history
func (s *Service) ListLogs(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]LogEntry, int64, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListLogsByVehicle(ctx, vehicleID, limit, offset)
}

// ========================================
// DUE BOARD
// ========================================

// ListDue recomputes the due board from current fleet state, optionally
// filtered by office or vehicle. Pass uuid.Nil to skip a filter.
func (s *Service) ListDue(ctx context.Context, officeID, vehicleID uuid.UUID) ([]DueRow, error) {
	vehicles, err := s.repo.ListVehicleSnapshots(ctx, officeID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("load vehicle snapshots: %w", err)
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load maintenance plans: %w", err)
	}
	plansByModel := make(map[uuid.UUID][]PlanEntry)
	for _, p := range plans {
		plansByModel[p.ModelID] = append(plansByModel[p.ModelID], p)
	}

	refs, err := s.repo.ListServiceTypeRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load service types: %w", err)
	}
	serviceTypes := make(map[uuid.UUID]ServiceTypeRef, len(refs))
	for _, st := range refs {
		serviceTypes[st.ID] = st
	}

	events, err := s.repo.ListServiceEvents(ctx, officeID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("load service events: %w", err)
	}

	return Project(vehicles, plansByModel, serviceTypes, LatestServices(events), s.now()), nil
}

// PerformService closes one due row: it appends a log entry dated today at
// the vehicle's current odometer reading, with a single cost line at the
// service type's default cost, and returns the new entry for follow-up
// editing. Creation of the entry and its cost line is atomic.
func (s *Service) PerformService(ctx context.Context, req *PerformServiceRequest) (*LogEntry, error) {
	v, err := s.getSnapshot(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	st, err := s.resolveServiceType(ctx, req.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	// Log mileage must be positive, same as a manually entered log.
	if v.Mileage <= 0 {
		return nil, common.NewValidationError("vehicle has no odometer reading yet")
	}

	l := &LogEntry{
		VehicleID: req.VehicleID,
		Date:      s.now().UTC(),
		Mileage:   v.Mileage,
		CostLines: []CostLine{{ServiceTypeID: st.ID, Cost: st.DefaultCost}},
	}
	if err := s.repo.CreateLog(ctx, l); err != nil {
		return nil, fmt.Errorf("perform service: %w", err)
	}

	s.publishPerformed(ctx, l, st)
	return l, nil
}

func (s *Service) getSnapshot(ctx context.Context, vehicleID uuid.UUID) (*VehicleSnapshot, error) {
	v, err := s.repo.GetVehicleSnapshot(ctx, vehicleID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("vehicle not found", nil)
		}
		return nil, err
	}
	return v, nil
}

// resolveServiceType treats an inactive service type the same as a missing
// one: actions against it fail hard rather than silently reviving it.
func (s *Service) resolveServiceType(ctx context.Context, id uuid.UUID) (*ServiceTypeRef, error) {
	st, err := s.repo.GetServiceTypeRef(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("service type not found", nil)
		}
		return nil, err
	}
	if !st.IsActive {
		return nil, common.NewNotFoundError("service type not found", nil)
	}
	return st, nil
}

func (s *Service) publishPerformed(ctx context.Context, l *LogEntry, st *ServiceTypeRef) {
	if s.bus == nil {
		return
	}

	event, err := eventbus.NewEvent(eventbus.SubjectMaintenancePerformed, "fleet-api", eventbus.MaintenancePerformedData{
		LogID:         l.ID,
		VehicleID:     l.VehicleID,
		ServiceTypeID: st.ID,
		Date:          l.Date,
		Mileage:       l.Mileage,
		Cost:          st.DefaultCost,
		PerformedAt:   time.Now().UTC(),
	})
	if err != nil {
		logger.WarnContext(ctx, "failed to build maintenance event", zap.Error(err))
		return
	}
	if err := s.bus.Publish(ctx, eventbus.SubjectMaintenancePerformed, event); err != nil {
		logger.WarnContext(ctx, "failed to publish maintenance event",
			zap.String("log_id", l.ID.String()), zap.Error(err))
	}
}
