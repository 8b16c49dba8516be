package maintenance

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

func (m *mockRepo) CreatePlan(ctx context.Context, p *PlanEntry) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepo) GetPlanByID(ctx context.Context, id uuid.UUID) (*PlanEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlanEntry), args.Error(1)
}

func (m *mockRepo) ListPlansByModel(ctx context.Context, modelID uuid.UUID) ([]PlanEntry, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlanEntry), args.Error(1)
}

func (m *mockRepo) UpdatePlan(ctx context.Context, p *PlanEntry) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepo) DeletePlan(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepo) ModelExists(ctx context.Context, modelID uuid.UUID) (bool, error) {
	args := m.Called(ctx, modelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) CreateLog(ctx context.Context, l *LogEntry) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockRepo) GetLogByID(ctx context.Context, id uuid.UUID) (*LogEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LogEntry), args.Error(1)
}

func (m *mockRepo) ListLogsByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]LogEntry, int64, error) {
	args := m.Called(ctx, vehicleID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]LogEntry), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) GetVehicleSnapshot(ctx context.Context, vehicleID uuid.UUID) (*VehicleSnapshot, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VehicleSnapshot), args.Error(1)
}

func (m *mockRepo) ListVehicleSnapshots(ctx context.Context, officeID, vehicleID uuid.UUID) ([]VehicleSnapshot, error) {
	args := m.Called(ctx, officeID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]VehicleSnapshot), args.Error(1)
}

func (m *mockRepo) ListPlans(ctx context.Context) ([]PlanEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlanEntry), args.Error(1)
}

func (m *mockRepo) ListServiceEvents(ctx context.Context, officeID, vehicleID uuid.UUID) ([]ServiceEvent, error) {
	args := m.Called(ctx, officeID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ServiceEvent), args.Error(1)
}

func (m *mockRepo) ListServiceTypeRefs(ctx context.Context) ([]ServiceTypeRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ServiceTypeRef), args.Error(1)
}

func (m *mockRepo) GetServiceTypeRef(ctx context.Context, id uuid.UUID) (*ServiceTypeRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ServiceTypeRef), args.Error(1)
}

func activeOilType() *ServiceTypeRef {
	return &ServiceTypeRef{ID: testOilID, Name: "Oil change", DefaultCost: 45, IsActive: true}
}

func TestCreatePlan(t *testing.T) {
	tests := []struct {
		name       string
		req        *CreatePlanRequest
		setupMocks func(*mockRepo)
		wantErr    bool
		errContain string
	}{
		{
			name: "success",
			req: &CreatePlanRequest{
				ModelID: testModelID, ServiceTypeID: testOilID,
				IntervalKm: 5000, IntervalDays: 90, RemindBeforeKm: 500, RemindBeforeDays: 7,
			},
			setupMocks: func(m *mockRepo) {
				m.On("ModelExists", mock.Anything, testModelID).Return(true, nil)
				m.On("GetServiceTypeRef", mock.Anything, testOilID).Return(activeOilType(), nil)
				m.On("CreatePlan", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name: "negative interval rejected",
			req: &CreatePlanRequest{
				ModelID: testModelID, ServiceTypeID: testOilID, IntervalKm: -100,
			},
			setupMocks: func(m *mockRepo) {},
			wantErr:    true,
			errContain: "intervals cannot be negative",
		},
		{
			name: "negative reminder threshold rejected",
			req: &CreatePlanRequest{
				ModelID: testModelID, ServiceTypeID: testOilID, IntervalKm: 5000, RemindBeforeDays: -1,
			},
			setupMocks: func(m *mockRepo) {},
			wantErr:    true,
			errContain: "thresholds cannot be negative",
		},
		{
			name: "unknown model",
			req:  &CreatePlanRequest{ModelID: testModelID, ServiceTypeID: testOilID, IntervalKm: 5000},
			setupMocks: func(m *mockRepo) {
				m.On("ModelExists", mock.Anything, testModelID).Return(false, nil)
			},
			wantErr:    true,
			errContain: "vehicle model not found",
		},
		{
			name: "inactive service type",
			req:  &CreatePlanRequest{ModelID: testModelID, ServiceTypeID: testOilID, IntervalKm: 5000},
			setupMocks: func(m *mockRepo) {
				m.On("ModelExists", mock.Anything, testModelID).Return(true, nil)
				m.On("GetServiceTypeRef", mock.Anything, testOilID).
					Return(&ServiceTypeRef{ID: testOilID, IsActive: false}, nil)
			},
			wantErr:    true,
			errContain: "service type not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			tt.setupMocks(repo)
			svc := NewService(repo, nil)

			plan, err := svc.CreatePlan(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testModelID, plan.ModelID)
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateLog(t *testing.T) {
	snapshot := func() *VehicleSnapshot {
		return &VehicleSnapshot{VehicleID: testVehicleID, ModelID: testModelID, Mileage: 15000}
	}
	logDate := date(2026, 8, 1)

	tests := []struct {
		name       string
		req        *CreateLogRequest
		setupMocks func(*mockRepo)
		wantErr    bool
		errContain string
	}{
		{
			name: "success",
			req: &CreateLogRequest{
				VehicleID: testVehicleID, Date: logDate, Mileage: 14800,
				CostLines: []CostLineInput{{ServiceTypeID: testOilID, Cost: 50}},
			},
			setupMocks: func(m *mockRepo) {
				m.On("GetVehicleSnapshot", mock.Anything, testVehicleID).Return(snapshot(), nil)
				m.On("GetServiceTypeRef", mock.Anything, testOilID).Return(activeOilType(), nil)
				m.On("CreateLog", mock.Anything, mock.MatchedBy(func(l *LogEntry) bool {
					return l.Mileage == 14800 && len(l.CostLines) == 1
				})).Return(nil)
			},
		},
		{
			name: "zero odometer reading",
			req: &CreateLogRequest{
				VehicleID: testVehicleID, Date: logDate, Mileage: 0,
				CostLines: []CostLineInput{{ServiceTypeID: testOilID}},
			},
			setupMocks: func(m *mockRepo) {
				m.On("GetVehicleSnapshot", mock.Anything, testVehicleID).Return(snapshot(), nil)
			},
			wantErr:    true,
			errContain: "must be positive",
		},
		{
			name: "reading beyond current odometer",
			req: &CreateLogRequest{
				VehicleID: testVehicleID, Date: logDate, Mileage: 15001,
				CostLines: []CostLineInput{{ServiceTypeID: testOilID}},
			},
			setupMocks: func(m *mockRepo) {
				m.On("GetVehicleSnapshot", mock.Anything, testVehicleID).Return(snapshot(), nil)
			},
			wantErr:    true,
			errContain: "exceeds the vehicle's current",
		},
		{
			name: "no cost lines",
			req: &CreateLogRequest{
				VehicleID: testVehicleID, Date: logDate, Mileage: 14000,
			},
			setupMocks: func(m *mockRepo) {
				m.On("GetVehicleSnapshot", mock.Anything, testVehicleID).Return(snapshot(), nil)
			},
			wantErr:    true,
			errContain: "at least one cost line",
		},
		{
			name: "unknown vehicle",
			req: &CreateLogRequest{
				VehicleID: testVehicleID, Date: logDate, Mileage: 100,
				CostLines: []CostLineInput{{ServiceTypeID: testOilID}},
			},
			setupMocks: func(m *mockRepo) {
				m.On("GetVehicleSnapshot", mock.Anything, testVehicleID).Return(nil, pgx.ErrNoRows)
			},
			wantErr:    true,
			errContain: "vehicle not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			tt.setupMocks(repo)
			svc := NewService(repo, nil)

			log, err := svc.CreateLog(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testVehicleID, log.VehicleID)
			repo.AssertExpectations(t)
		})
	}
}

func TestPerformService(t *testing.T) {
	t.Run("appends one log at current odometer and default cost", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetVehicleSnapshot", mock.Anything, testVehicleID).
			Return(&VehicleSnapshot{VehicleID: testVehicleID, Mileage: 15200}, nil)
		repo.On("GetServiceTypeRef", mock.Anything, testOilID).Return(activeOilType(), nil)
		repo.On("CreateLog", mock.Anything, mock.MatchedBy(func(l *LogEntry) bool {
			return l.VehicleID == testVehicleID &&
				l.Mileage == 15200 &&
				len(l.CostLines) == 1 &&
				l.CostLines[0].ServiceTypeID == testOilID &&
				l.CostLines[0].Cost == 45
		})).Return(nil)

		svc := NewService(repo, nil)
		svc.now = func() time.Time { return date(2026, 8, 1) }

		log, err := svc.PerformService(context.Background(), &PerformServiceRequest{
			VehicleID: testVehicleID, ServiceTypeID: testOilID,
		})
		require.NoError(t, err)
		assert.Equal(t, 15200, log.Mileage)
		assert.Equal(t, date(2026, 8, 1), log.Date)
		repo.AssertExpectations(t)
	})

	t.Run("service type no longer resolves", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetVehicleSnapshot", mock.Anything, testVehicleID).
			Return(&VehicleSnapshot{VehicleID: testVehicleID, Mileage: 15200}, nil)
		repo.On("GetServiceTypeRef", mock.Anything, testOilID).Return(nil, pgx.ErrNoRows)

		svc := NewService(repo, nil)
		_, err := svc.PerformService(context.Background(), &PerformServiceRequest{
			VehicleID: testVehicleID, ServiceTypeID: testOilID,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service type not found")
		repo.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
	})

	t.Run("never-driven vehicle is rejected", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetVehicleSnapshot", mock.Anything, testVehicleID).
			Return(&VehicleSnapshot{VehicleID: testVehicleID, Mileage: 0}, nil)
		repo.On("GetServiceTypeRef", mock.Anything, testOilID).Return(activeOilType(), nil)

		svc := NewService(repo, nil)
		_, err := svc.PerformService(context.Background(), &PerformServiceRequest{
			VehicleID: testVehicleID, ServiceTypeID: testOilID,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no odometer reading")
		repo.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
	})

	t.Run("deactivated service type fails the same way", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetVehicleSnapshot", mock.Anything, testVehicleID).
			Return(&VehicleSnapshot{VehicleID: testVehicleID, Mileage: 15200}, nil)
		repo.On("GetServiceTypeRef", mock.Anything, testOilID).
			Return(&ServiceTypeRef{ID: testOilID, IsActive: false}, nil)

		svc := NewService(repo, nil)
		_, err := svc.PerformService(context.Background(), &PerformServiceRequest{
			VehicleID: testVehicleID, ServiceTypeID: testOilID,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service type not found")
	})
}

func TestListDue_AssemblesProjectionInputs(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListVehicleSnapshots", mock.Anything, uuid.Nil, uuid.Nil).
		Return([]VehicleSnapshot{testVehicle(14600, date(2025, 1, 1))}, nil)
	repo.On("ListPlans", mock.Anything).Return([]PlanEntry{
		{ModelID: testModelID, ServiceTypeID: testOilID, IntervalKm: 5000, RemindBeforeKm: 500},
	}, nil)
	repo.On("ListServiceTypeRefs", mock.Anything).Return([]ServiceTypeRef{*activeOilType()}, nil)
	repo.On("ListServiceEvents", mock.Anything, uuid.Nil, uuid.Nil).Return([]ServiceEvent{
		{VehicleID: testVehicleID, ServiceTypeID: testOilID, Date: date(2026, 5, 1), Mileage: 10000, LogSeq: 1},
	}, nil)

	svc := NewService(repo, nil)
	svc.now = func() time.Time { return date(2026, 8, 1) }

	rows, err := svc.ListDue(context.Background(), uuid.Nil, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Oil change", rows[0].ServiceTypeName)
	require.NotNil(t, rows[0].KmToDue)
	assert.Equal(t, 400, *rows[0].KmToDue)
	assert.Equal(t, UrgencyDueSoon, rows[0].UrgencyColor)
	repo.AssertExpectations(t)
}
