package payouts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreatePayout(ctx context.Context, p *Payout) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepo) GetPayoutByID(ctx context.Context, id uuid.UUID) (*Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payout), args.Error(1)
}

func (m *mockRepo) ListPayouts(ctx context.Context, officeID uuid.UUID, limit, offset int) ([]Payout, int64, error) {
	args := m.Called(ctx, officeID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Payout), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) GetOfficeSalary(ctx context.Context, officeID uuid.UUID) (*OfficeSalary, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OfficeSalary), args.Error(1)
}

func (m *mockRepo) ManagerRevenues(ctx context.Context, officeID uuid.UUID, from, to time.Time) ([]ManagerRevenue, error) {
	args := m.Called(ctx, officeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ManagerRevenue), args.Error(1)
}

var fixedPayoutOfficeID = uuid.MustParse("fedcba98-7654-4321-8fed-cba987654321")

func TestRecalculate(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("computes and stores the split", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetOfficeSalary", mock.Anything, fixedPayoutOfficeID).
			Return(&OfficeSalary{OfficeID: fixedPayoutOfficeID, SalaryFixedUSD: 150, SalaryPercent: 30}, nil)
		repo.On("ManagerRevenues", mock.Anything, fixedPayoutOfficeID, from, to).
			Return([]ManagerRevenue{{ManagerID: managerA, Revenue: 2000}}, nil)
		repo.On("CreatePayout", mock.Anything, mock.MatchedBy(func(p *Payout) bool {
			return len(p.Lines) == 1 && p.Lines[0].Total == 600+150.0
		})).Return(nil)

		svc := NewService(repo, nil)
		p, err := svc.Recalculate(context.Background(), &RecalculateRequest{
			OfficeID: fixedPayoutOfficeID, DateFrom: from, DateTo: to, CurrencyRate: 1,
		})
		require.NoError(t, err)
		require.Len(t, p.Lines, 1)
		assert.Equal(t, 750.0, p.Lines[0].Total)
		repo.AssertExpectations(t)
	})

	t.Run("inverted period rejected", func(t *testing.T) {
		svc := NewService(new(mockRepo), nil)
		_, err := svc.Recalculate(context.Background(), &RecalculateRequest{
			OfficeID: fixedPayoutOfficeID, DateFrom: to, DateTo: from, CurrencyRate: 1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "period end must be after")
	})

	t.Run("non-positive rate rejected", func(t *testing.T) {
		svc := NewService(new(mockRepo), nil)
		_, err := svc.Recalculate(context.Background(), &RecalculateRequest{
			OfficeID: fixedPayoutOfficeID, DateFrom: from, DateTo: to, CurrencyRate: 0,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency rate must be positive")
	})

	t.Run("unknown office", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetOfficeSalary", mock.Anything, fixedPayoutOfficeID).Return(nil, pgx.ErrNoRows)

		svc := NewService(repo, nil)
		_, err := svc.Recalculate(context.Background(), &RecalculateRequest{
			OfficeID: fixedPayoutOfficeID, DateFrom: from, DateTo: to, CurrencyRate: 1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "office not found")
	})

	t.Run("empty period stores an empty payout", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetOfficeSalary", mock.Anything, fixedPayoutOfficeID).
			Return(&OfficeSalary{OfficeID: fixedPayoutOfficeID, SalaryFixedUSD: 150, SalaryPercent: 30}, nil)
		repo.On("ManagerRevenues", mock.Anything, fixedPayoutOfficeID, from, to).
			Return([]ManagerRevenue{}, nil)
		repo.On("CreatePayout", mock.Anything, mock.Anything).Return(nil)

		svc := NewService(repo, nil)
		p, err := svc.Recalculate(context.Background(), &RecalculateRequest{
			OfficeID: fixedPayoutOfficeID, DateFrom: from, DateTo: to, CurrencyRate: 1,
		})
		require.NoError(t, err)
		assert.Empty(t, p.Lines)
	})
}
