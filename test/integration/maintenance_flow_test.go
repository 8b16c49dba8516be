//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/motorent/fleet-api/internal/maintenance"
	"github.com/motorent/fleet-api/test/helpers"
)

// TestIntegration_MaintenanceDueFlow drives the full cycle against a real
// database: a vehicle past its oil-change interval shows up on the due board,
// performing the service writes a log with a cost line, and the board stops
// flagging the pair afterwards.
func TestIntegration_MaintenanceDueFlow(t *testing.T) {
	pool := helpers.NewTestPool(t)
	helpers.TruncateTables(t, pool,
		"maintenance_cost_lines", "maintenance_logs", "maintenance_plans",
		"orders", "vehicles", "tariffs", "vehicle_models", "service_types", "renters", "offices",
	)

	ctx := context.Background()

	officeID := seedOffice(t, pool)
	modelID := seedModel(t, pool)
	serviceTypeID := seedServiceType(t, pool, "Oil change", 45)
	vehicleID := seedVehicle(t, pool, modelID, officeID, "AB-1234-CD", 15200)

	_, err := pool.Exec(ctx, `
		INSERT INTO maintenance_plans (id, model_id, service_type_id, interval_km, interval_days, remind_before_km, remind_before_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New(), modelID, serviceTypeID, 5000, 0, 500, 0)
	require.NoError(t, err)

	// Logged service at 10000 km, vehicle now at 15200: 200 km overdue.
	repo := maintenance.NewRepository(pool)
	svc := maintenance.NewService(repo, nil)

	logEntry, err := svc.CreateLog(ctx, &maintenance.CreateLogRequest{
		VehicleID: vehicleID,
		Date:      time.Now().AddDate(0, -3, 0),
		Mileage:   10000,
		CostLines: []maintenance.CostLineInput{{ServiceTypeID: serviceTypeID, Cost: 40}},
	})
	require.NoError(t, err)
	require.NotZero(t, logEntry.Seq)

	rows, err := svc.ListDue(ctx, uuid.Nil, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Overdue)
	require.Equal(t, maintenance.UrgencyOverdue, rows[0].UrgencyColor)
	require.NotNil(t, rows[0].KmToDue)
	require.Equal(t, -200, *rows[0].KmToDue)

	performed, err := svc.PerformService(ctx, &maintenance.PerformServiceRequest{
		VehicleID:     vehicleID,
		ServiceTypeID: serviceTypeID,
	})
	require.NoError(t, err)
	require.Equal(t, 15200, performed.Mileage)
	require.Len(t, performed.CostLines, 1)
	require.Equal(t, 45.0, performed.CostLines[0].Cost)

	var lineCount int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM maintenance_cost_lines WHERE log_id = $1`, performed.ID).Scan(&lineCount)
	require.NoError(t, err)
	require.Equal(t, 1, lineCount)

	rows, err = svc.ListDue(ctx, uuid.Nil, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.False(t, rows[0].IsDue)
	require.False(t, rows[0].Overdue)
	require.Equal(t, maintenance.UrgencyOK, rows[0].UrgencyColor)
	require.Equal(t, 15200, rows[0].LastServiceMileage)
}

// TestIntegration_DueBoardSkipsInactiveVehicles verifies retired vehicles
// never appear on the board even with an overdue plan.
func TestIntegration_DueBoardSkipsInactiveVehicles(t *testing.T) {
	pool := helpers.NewTestPool(t)
	helpers.TruncateTables(t, pool,
		"maintenance_cost_lines", "maintenance_logs", "maintenance_plans",
		"orders", "vehicles", "tariffs", "vehicle_models", "service_types", "renters", "offices",
	)

	ctx := context.Background()

	officeID := seedOffice(t, pool)
	modelID := seedModel(t, pool)
	serviceTypeID := seedServiceType(t, pool, "Brake check", 30)
	vehicleID := seedVehicle(t, pool, modelID, officeID, "ZZ-9999-XX", 50000)

	_, err := pool.Exec(ctx, `
		INSERT INTO maintenance_plans (id, model_id, service_type_id, interval_km, interval_days, remind_before_km, remind_before_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New(), modelID, serviceTypeID, 10000, 0, 1000, 0)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `UPDATE vehicles SET status = 'inactive' WHERE id = $1`, vehicleID)
	require.NoError(t, err)

	svc := maintenance.NewService(maintenance.NewRepository(pool), nil)

	rows, err := svc.ListDue(ctx, uuid.Nil, uuid.Nil)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func seedOffice(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO offices (id, name, city, country, currency, salary_fixed_usd, salary_percent, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, "Downtown", "Lisbon", "PT", "EUR", 150.0, 30.0, true)
	require.NoError(t, err)
	return id
}

func seedModel(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO vehicle_models (id, manufacturer, name, vehicle_type, transmission)
		VALUES ($1, $2, $3, $4, $5)
	`, id, "Honda", "PCX 125", "scooter", "automatic")
	require.NoError(t, err)
	return id
}

func seedServiceType(t *testing.T, pool *pgxpool.Pool, name string, cost float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO service_types (id, name, default_cost, is_active)
		VALUES ($1, $2, $3, $4)
	`, id, name, cost, true)
	require.NoError(t, err)
	return id
}

func seedVehicle(t *testing.T, pool *pgxpool.Pool, modelID, officeID uuid.UUID, plate string, mileage int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO vehicles (id, model_id, office_id, plate, year, purchase_price, mileage, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, modelID, officeID, plate, 2023, 3200.0, mileage, "available")
	require.NoError(t, err)
	return id
}
