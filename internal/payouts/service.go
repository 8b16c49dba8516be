package payouts

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
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service handles payout business logic
type Service struct {
	repo RepositoryInterface
	bus  *eventbus.Bus // nil disables event publishing
}

// NewService creates a new payouts service
func NewService(repo RepositoryInterface, bus *eventbus.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Recalculate computes a payout period for an office and stores the result.
// Each run produces a new payout record; history is never overwritten.
func (s *Service) Recalculate(ctx context.Context, req *RecalculateRequest) (*Payout, error) {
	if !req.DateTo.After(req.DateFrom) {
		return nil, common.NewValidationError("period end must be after period start")
	}
	if req.CurrencyRate <= 0 {
		return nil, common.NewValidationError("currency rate must be positive")
	}

	office, err := s.repo.GetOfficeSalary(ctx, req.OfficeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("office not found", nil)
		}
		return nil, err
	}

	revenues, err := s.repo.ManagerRevenues(ctx, req.OfficeID, req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	p := &Payout{
		OfficeID:     req.OfficeID,
		DateFrom:     req.DateFrom,
		DateTo:       req.DateTo,
		CurrencyRate: req.CurrencyRate,
		Lines:        ComputeSplit(revenues, office.SalaryPercent, office.SalaryFixedUSD, req.CurrencyRate),
	}
	if err := s.repo.CreatePayout(ctx, p); err != nil {
		return nil, fmt.Errorf("recalculate payout: %w", err)
	}

	s.publishRecalculated(ctx, p)
	return p, nil
}

// Get returns a payout with its lines
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payout, error) {
	p, err := s.repo.GetPayoutByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("payout not found", nil)
		}
		return nil, err
	}
	return p, nil
}

// List returns payout history, optionally scoped to an office
func (s *Service) List(ctx context.Context, officeID uuid.UUID, limit, offset int) ([]Payout, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListPayouts(ctx, officeID, limit, offset)
}

func (s *Service) publishRecalculated(ctx context.Context, p *Payout) {
	if s.bus == nil {
		return
	}

	var totalAmount float64
	for _, l := range p.Lines {
		totalAmount += l.Total
	}

	event, err := eventbus.NewEvent(eventbus.SubjectPayoutRecalculated, "fleet-api", eventbus.PayoutRecalculatedData{
		PayoutID:       p.ID,
		OfficeID:       p.OfficeID,
		DateFrom:       p.DateFrom,
		DateTo:         p.DateTo,
		ManagerCount:   len(p.Lines),
		TotalAmount:    totalAmount,
		RecalculatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.WarnContext(ctx, "failed to build payout event", zap.Error(err))
		return
	}
	if err := s.bus.Publish(ctx, eventbus.SubjectPayoutRecalculated, event); err != nil {
		logger.WarnContext(ctx, "failed to publish payout event",
			zap.String("payout_id", p.ID.String()), zap.Error(err))
	}
}
