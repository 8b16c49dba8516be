package tariffs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/motorent/fleet-api/pkg/common"
)

// Service handles tariff business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new tariffs service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Create creates a tariff. Daily tariffs need a min period of at least one
// day; hourly tariffs always use a min period of zero.
func (s *Service) Create(ctx context.Context, req *CreateTariffRequest) (*Tariff, error) {
	if !ValidPeriodTypes[req.PeriodType] {
		return nil, common.NewValidationError("period type must be 'hour' or 'day'")
	}
	if req.Price <= 0 {
		return nil, common.NewValidationError("price must be positive")
	}

	minPeriod := req.MinPeriod
	switch req.PeriodType {
	case PeriodDay:
		if minPeriod < 1 {
			return nil, common.NewValidationError("daily tariffs require a min period of at least 1 day")
		}
	case PeriodHour:
		minPeriod = 0
	}

	t := &Tariff{
		ModelID:    req.ModelID,
		PeriodType: req.PeriodType,
		MinPeriod:  minPeriod,
		Price:      req.Price,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create tariff: %w", err)
	}
	return t, nil
}

// Get returns a tariff by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Tariff, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError("tariff not found", nil)
		}
		return nil, err
	}
	return t, nil
}

// ListByModel returns a model's tariff ladder
func (s *Service) ListByModel(ctx context.Context, modelID uuid.UUID) ([]Tariff, error) {
	return s.repo.ListByModel(ctx, modelID)
}

// Update changes a tariff price
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateTariffRequest) (*Tariff, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, common.NewValidationError("price must be positive")
		}
		t.Price = *req.Price
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update tariff: %w", err)
	}
	return t, nil
}

// Delete removes a tariff
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// QuoteFor resolves the daily and hourly prices for a rental length.
// Quoting fails when no daily rung covers the rental length; a missing
// hourly tariff just prices partial hours at zero.
func (s *Service) QuoteFor(ctx context.Context, modelID uuid.UUID, rentalDays int) (*Quote, error) {
	if rentalDays < 1 {
		return nil, common.NewValidationError("rental length must be at least 1 day")
	}

	daily, err := s.repo.ResolveDaily(ctx, modelID, rentalDays)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewNotFoundError(
				fmt.Sprintf("no daily tariff covers a %d-day rental for this model", rentalDays), nil,
			)
		}
		return nil, err
	}

	q := &Quote{ModelID: modelID, RentalDays: rentalDays, DailyTariff: daily}

	hourly, err := s.repo.ResolveHourly(ctx, modelID)
	if err != nil {
		if err != pgx.ErrNoRows {
			return nil, err
		}
	} else {
		q.HourlyPrice = hourly.Price
	}
	return q, nil
}
