package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/motorent/fleet-api/internal/tariffs"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, officeID, renterID uuid.UUID, status OrderStatus, limit, offset int) ([]Order, int64, error) {
	args := m.Called(ctx, officeID, renterID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockRepo) GetVehicleRef(ctx context.Context, vehicleID uuid.UUID) (*VehicleRef, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VehicleRef), args.Error(1)
}

func (m *mockRepo) SetVehicleStatus(ctx context.Context, vehicleID uuid.UUID, status string) error {
	args := m.Called(ctx, vehicleID, status)
	return args.Error(0)
}

func (m *mockRepo) SetVehicleMileage(ctx context.Context, vehicleID uuid.UUID, mileage int) error {
	args := m.Called(ctx, vehicleID, mileage)
	return args.Error(0)
}

func (m *mockRepo) RenterExists(ctx context.Context, renterID uuid.UUID) (bool, error) {
	args := m.Called(ctx, renterID)
	return args.Bool(0), args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) QuoteFor(ctx context.Context, modelID uuid.UUID, rentalDays int) (*tariffs.Quote, error) {
	args := m.Called(ctx, modelID, rentalDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tariffs.Quote), args.Error(1)
}

var (
	orderID   = uuid.MustParse("b1c2d3e4-f5a6-4718-8920-31a2b3c4d5e6")
	vehicleID = uuid.MustParse("c2d3e4f5-a6b7-4829-9031-42b3c4d5e6f7")
	modelID   = uuid.MustParse("d3e4f5a6-b7c8-493a-a142-53c4d5e6f708")
	officeID  = uuid.MustParse("e4f5a6b7-c8d9-4a4b-b253-64d5e6f70819")
	renterID  = uuid.MustParse("f5a6b7c8-d9ea-4b5c-c364-75e6f708192a")
	managerID = uuid.MustParse("a6b7c8d9-eafb-4c6d-8475-86f708192a3b")
	tariffID  = uuid.MustParse("b7c8d9ea-fb0c-4d7e-9586-9708192a3b4c")
)

func availableVehicle() *VehicleRef {
	return &VehicleRef{ID: vehicleID, ModelID: modelID, OfficeID: officeID, Mileage: 12000, Status: "available"}
}

func weeklyQuote() *tariffs.Quote {
	return &tariffs.Quote{
		ModelID:     modelID,
		RentalDays:  7,
		DailyTariff: &tariffs.Tariff{ID: tariffID, ModelID: modelID, PeriodType: tariffs.PeriodDay, MinPeriod: 7, Price: 35},
		HourlyPrice: 8,
	}
}

func TestCreateOrder(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("drafts with snapshotted prices", func(t *testing.T) {
		repo := new(mockRepo)
		resolver := new(mockResolver)
		repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(availableVehicle(), nil)
		repo.On("RenterExists", mock.Anything, renterID).Return(true, nil)
		resolver.On("QuoteFor", mock.Anything, modelID, 7).Return(weeklyQuote(), nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(o *Order) bool {
			return o.Status == StatusDraft &&
				o.OfficeID == officeID &&
				o.TariffID == tariffID &&
				o.TariffPrice == 35 &&
				o.HourlyPrice == 8 &&
				o.Total == 7*35+2*8.0
		})).Return(nil)

		svc := NewService(repo, resolver, nil)
		o, err := svc.Create(context.Background(), &CreateOrderRequest{
			VehicleID: vehicleID, RenterID: renterID, ManagerID: managerID,
			StartDate: start, RentalDays: 7, RentalHours: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, start.AddDate(0, 0, 7).Add(2*time.Hour), o.EndDate)
		repo.AssertExpectations(t)
		resolver.AssertExpectations(t)
	})

	t.Run("rejects zero-day rental", func(t *testing.T) {
		svc := NewService(new(mockRepo), new(mockResolver), nil)
		_, err := svc.Create(context.Background(), &CreateOrderRequest{
			VehicleID: vehicleID, RenterID: renterID, ManagerID: managerID,
			StartDate: start, RentalDays: 0,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1 day")
	})

	t.Run("rejects inactive vehicle", func(t *testing.T) {
		repo := new(mockRepo)
		v := availableVehicle()
		v.Status = "inactive"
		repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(v, nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Create(context.Background(), &CreateOrderRequest{
			VehicleID: vehicleID, RenterID: renterID, ManagerID: managerID,
			StartDate: start, RentalDays: 3,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not in the working fleet")
	})

	t.Run("unknown renter", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(availableVehicle(), nil)
		repo.On("RenterExists", mock.Anything, renterID).Return(false, nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Create(context.Background(), &CreateOrderRequest{
			VehicleID: vehicleID, RenterID: renterID, ManagerID: managerID,
			StartDate: start, RentalDays: 3,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "renter not found")
	})
}

func TestStartOrder(t *testing.T) {
	draft := func() *Order {
		return &Order{ID: orderID, VehicleID: vehicleID, RenterID: renterID, Status: StatusDraft}
	}

	t.Run("snapshots start mileage and rents the vehicle", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, orderID).Return(draft(), nil)
		repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(availableVehicle(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *Order) bool {
			return o.Status == StatusActive && o.StartMileage != nil && *o.StartMileage == 12000
		})).Return(nil)
		repo.On("SetVehicleStatus", mock.Anything, vehicleID, "rented").Return(nil)

		svc := NewService(repo, new(mockResolver), nil)
		o, err := svc.Start(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("refuses a rented vehicle", func(t *testing.T) {
		repo := new(mockRepo)
		v := availableVehicle()
		v.Status = "rented"
		repo.On("GetByID", mock.Anything, orderID).Return(draft(), nil)
		repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(v, nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Start(context.Background(), orderID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vehicle is rented")
	})

	t.Run("refuses non-draft order", func(t *testing.T) {
		repo := new(mockRepo)
		done := draft()
		done.Status = StatusDone
		repo.On("GetByID", mock.Anything, orderID).Return(done, nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Start(context.Background(), orderID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot start")
	})
}

func TestCompleteOrder(t *testing.T) {
	active := func(startMileage int) *Order {
		return &Order{
			ID: orderID, VehicleID: vehicleID, RenterID: renterID,
			Status: StatusActive, StartMileage: &startMileage, Total: 285,
		}
	}

	t.Run("moves the odometer forward and frees the vehicle", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, orderID).Return(active(12000), nil)
		repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(availableVehicle(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *Order) bool {
			return o.Status == StatusDone && o.EndMileage != nil && *o.EndMileage == 12450
		})).Return(nil)
		repo.On("SetVehicleMileage", mock.Anything, vehicleID, 12450).Return(nil)
		repo.On("SetVehicleStatus", mock.Anything, vehicleID, "available").Return(nil)

		svc := NewService(repo, new(mockResolver), nil)
		o, err := svc.Complete(context.Background(), orderID, &CompleteOrderRequest{EndMileage: 12450})
		require.NoError(t, err)
		assert.Equal(t, StatusDone, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("never rolls the odometer back", func(t *testing.T) {
		repo := new(mockRepo)
		v := availableVehicle()
		v.Mileage = 13000 // odometer already past the reported end reading
		repo.On("GetByID", mock.Anything, orderID).Return(active(12000), nil)
		repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(v, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)
		repo.On("SetVehicleStatus", mock.Anything, vehicleID, "available").Return(nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Complete(context.Background(), orderID, &CompleteOrderRequest{EndMileage: 12450})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "SetVehicleMileage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects end reading below start", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, orderID).Return(active(12000), nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Complete(context.Background(), orderID, &CompleteOrderRequest{EndMileage: 11900})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "below the start reading")
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("active order frees the vehicle", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, orderID).
			Return(&Order{ID: orderID, VehicleID: vehicleID, Status: StatusActive}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *Order) bool {
			return o.Status == StatusCancelled
		})).Return(nil)
		repo.On("SetVehicleStatus", mock.Anything, vehicleID, "available").Return(nil)

		svc := NewService(repo, new(mockResolver), nil)
		o, err := svc.Cancel(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("draft order leaves the vehicle alone", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, orderID).
			Return(&Order{ID: orderID, VehicleID: vehicleID, Status: StatusDraft}, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Cancel(context.Background(), orderID)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "SetVehicleStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("completed order cannot be cancelled", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, orderID).
			Return(&Order{ID: orderID, Status: StatusDone}, nil)

		svc := NewService(repo, new(mockResolver), nil)
		_, err := svc.Cancel(context.Background(), orderID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot cancel")
	})
}

func TestUpdateOrder_RepricesOnLengthChange(t *testing.T) {
	days := 10
	repo := new(mockRepo)
	resolver := new(mockResolver)
	repo.On("GetByID", mock.Anything, orderID).Return(&Order{
		ID: orderID, VehicleID: vehicleID, Status: StatusDraft,
		RentalDays: 3, TariffPrice: 50, HourlyPrice: 8,
		StartDate: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}, nil)
	repo.On("GetVehicleRef", mock.Anything, vehicleID).Return(availableVehicle(), nil)
	resolver.On("QuoteFor", mock.Anything, modelID, 10).Return(&tariffs.Quote{
		ModelID:     modelID,
		RentalDays:  10,
		DailyTariff: &tariffs.Tariff{ID: tariffID, Price: 35, MinPeriod: 7, PeriodType: tariffs.PeriodDay},
		HourlyPrice: 8,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *Order) bool {
		return o.TariffPrice == 35 && o.Total == 350
	})).Return(nil)

	svc := NewService(repo, resolver, nil)
	o, err := svc.Update(context.Background(), orderID, &UpdateOrderRequest{RentalDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 350.0, o.Total)
	repo.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestUpdateOrder_FrozenPastDraft(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, orderID).Return(&Order{ID: orderID, Status: StatusActive}, nil)

	svc := NewService(repo, new(mockResolver), nil)
	note := "late pickup"
	_, err := svc.Update(context.Background(), orderID, &UpdateOrderRequest{Note: &note})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only draft orders")
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, orderID).Return(nil, pgx.ErrNoRows)

	svc := NewService(repo, new(mockResolver), nil)
	_, err := svc.Get(context.Background(), orderID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")
}
