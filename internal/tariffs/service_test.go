package tariffs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, t *Tariff) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Tariff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tariff), args.Error(1)
}

func (m *mockRepo) ListByModel(ctx context.Context, modelID uuid.UUID) ([]Tariff, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Tariff), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, t *Tariff) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepo) ResolveDaily(ctx context.Context, modelID uuid.UUID, rentalDays int) (*Tariff, error) {
	args := m.Called(ctx, modelID, rentalDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tariff), args.Error(1)
}

func (m *mockRepo) ResolveHourly(ctx context.Context, modelID uuid.UUID) (*Tariff, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tariff), args.Error(1)
}

var fixedTariffModelID = uuid.MustParse("8c9daebf-0213-4465-8798-a1b2c3d4e5f6")

func TestCreateTariff(t *testing.T) {
	tests := []struct {
		name       string
		req        *CreateTariffRequest
		setupMocks func(*mockRepo)
		wantErr    bool
		errContain string
		validate   func(*testing.T, *Tariff)
	}{
		{
			name: "daily rung",
			req:  &CreateTariffRequest{ModelID: fixedTariffModelID, PeriodType: PeriodDay, MinPeriod: 7, Price: 35},
			setupMocks: func(m *mockRepo) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			validate: func(t *testing.T, tr *Tariff) {
				assert.Equal(t, 7, tr.MinPeriod)
			},
		},
		{
			name: "hourly tariff forces zero min period",
			req:  &CreateTariffRequest{ModelID: fixedTariffModelID, PeriodType: PeriodHour, MinPeriod: 3, Price: 8},
			setupMocks: func(m *mockRepo) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			validate: func(t *testing.T, tr *Tariff) {
				assert.Equal(t, 0, tr.MinPeriod)
			},
		},
		{
			name:       "invalid period type",
			req:        &CreateTariffRequest{ModelID: fixedTariffModelID, PeriodType: "week", Price: 100},
			setupMocks: func(m *mockRepo) {},
			wantErr:    true,
			errContain: "period type",
		},
		{
			name:       "daily rung below one day",
			req:        &CreateTariffRequest{ModelID: fixedTariffModelID, PeriodType: PeriodDay, MinPeriod: 0, Price: 40},
			setupMocks: func(m *mockRepo) {},
			wantErr:    true,
			errContain: "at least 1 day",
		},
		{
			name:       "non-positive price",
			req:        &CreateTariffRequest{ModelID: fixedTariffModelID, PeriodType: PeriodDay, MinPeriod: 1, Price: 0},
			setupMocks: func(m *mockRepo) {},
			wantErr:    true,
			errContain: "price must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			tt.setupMocks(repo)
			svc := NewService(repo)

			tariff, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, tariff)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestQuoteFor(t *testing.T) {
	t.Run("resolves daily rung and hourly price", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ResolveDaily", mock.Anything, fixedTariffModelID, 10).
			Return(&Tariff{ModelID: fixedTariffModelID, PeriodType: PeriodDay, MinPeriod: 7, Price: 35}, nil)
		repo.On("ResolveHourly", mock.Anything, fixedTariffModelID).
			Return(&Tariff{ModelID: fixedTariffModelID, PeriodType: PeriodHour, Price: 8}, nil)
		svc := NewService(repo)

		q, err := svc.QuoteFor(context.Background(), fixedTariffModelID, 10)
		require.NoError(t, err)
		require.NotNil(t, q.DailyTariff)
		assert.Equal(t, 7, q.DailyTariff.MinPeriod)
		assert.Equal(t, float64(35), q.DailyTariff.Price)
		assert.Equal(t, float64(8), q.HourlyPrice)
	})

	t.Run("no covering daily rung", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ResolveDaily", mock.Anything, fixedTariffModelID, 2).Return(nil, pgx.ErrNoRows)
		svc := NewService(repo)

		_, err := svc.QuoteFor(context.Background(), fixedTariffModelID, 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no daily tariff covers")
	})

	t.Run("missing hourly tariff prices hours at zero", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ResolveDaily", mock.Anything, fixedTariffModelID, 3).
			Return(&Tariff{ModelID: fixedTariffModelID, PeriodType: PeriodDay, MinPeriod: 1, Price: 50}, nil)
		repo.On("ResolveHourly", mock.Anything, fixedTariffModelID).Return(nil, pgx.ErrNoRows)
		svc := NewService(repo)

		q, err := svc.QuoteFor(context.Background(), fixedTariffModelID, 3)
		require.NoError(t, err)
		assert.Zero(t, q.HourlyPrice)
	})

	t.Run("rejects zero-day rental", func(t *testing.T) {
		svc := NewService(new(mockRepo))
		_, err := svc.QuoteFor(context.Background(), fixedTariffModelID, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1 day")
	})
}
