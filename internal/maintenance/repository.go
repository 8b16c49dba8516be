package maintenance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for the maintenance feature
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new maintenance repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ========================================
// PLANS
// ========================================

// CreatePlan creates a new plan entry
func (r *Repository) CreatePlan(ctx context.Context, p *PlanEntry) error {
	query := `
		INSERT INTO maintenance_plans (id, model_id, service_type_id, interval_km, interval_days, remind_before_km, remind_before_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	p.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		p.ID, p.ModelID, p.ServiceTypeID, p.IntervalKm, p.IntervalDays, p.RemindBeforeKm, p.RemindBeforeDays,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create maintenance plan: %w", err)
	}
	return nil
}

// GetPlanByID retrieves a plan entry by ID
func (r *Repository) GetPlanByID(ctx context.Context, id uuid.UUID) (*PlanEntry, error) {
	query := `
		SELECT id, model_id, service_type_id, interval_km, interval_days, remind_before_km, remind_before_days, created_at, updated_at
		FROM maintenance_plans WHERE id = $1
	`
	p := &PlanEntry{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ModelID, &p.ServiceTypeID, &p.IntervalKm, &p.IntervalDays,
		&p.RemindBeforeKm, &p.RemindBeforeDays, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlansByModel lists plan entries for one vehicle model
func (r *Repository) ListPlansByModel(ctx context.Context, modelID uuid.UUID) ([]PlanEntry, error) {
	query := `
		SELECT id, model_id, service_type_id, interval_km, interval_days, remind_before_km, remind_before_days, created_at, updated_at
		FROM maintenance_plans WHERE model_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance plans: %w", err)
	}
	defer rows.Close()

	return scanPlans(rows)
}

// ListPlans lists every plan entry
func (r *Repository) ListPlans(ctx context.Context) ([]PlanEntry, error) {
	query := `
		SELECT id, model_id, service_type_id, interval_km, interval_days, remind_before_km, remind_before_days, created_at, updated_at
		FROM maintenance_plans
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance plans: %w", err)
	}
	defer rows.Close()

	return scanPlans(rows)
}

// UpdatePlan updates a plan entry's intervals and thresholds
func (r *Repository) UpdatePlan(ctx context.Context, p *PlanEntry) error {
	query := `
		UPDATE maintenance_plans
		SET interval_km = $2, interval_days = $3, remind_before_km = $4, remind_before_days = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.ID, p.IntervalKm, p.IntervalDays, p.RemindBeforeKm, p.RemindBeforeDays,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update maintenance plan: %w", err)
	}
	return nil
}

// DeletePlan deletes a plan entry
func (r *Repository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM maintenance_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance plan: %w", err)
	}
	return nil
}

// ModelExists reports whether a vehicle model exists
func (r *Repository) ModelExists(ctx context.Context, modelID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vehicle_models WHERE id = $1)`, modelID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle model: %w", err)
	}
	return exists, nil
}

// ========================================
// LOGS
// ========================================

// CreateLog inserts a log entry together with its cost lines in one
// transaction. Either everything is written or nothing is.
func (r *Repository) CreateLog(ctx context.Context, l *LogEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	logQuery := `
		INSERT INTO maintenance_logs (id, vehicle_id, date, mileage, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq, created_at
	`
	l.ID = uuid.New()
	err = tx.QueryRow(ctx, logQuery, l.ID, l.VehicleID, l.Date, l.Mileage, l.Note).Scan(&l.Seq, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create maintenance log: %w", err)
	}

	lineQuery := `
		INSERT INTO maintenance_cost_lines (id, log_id, service_type_id, cost)
		VALUES ($1, $2, $3, $4)
	`
	for i := range l.CostLines {
		l.CostLines[i].ID = uuid.New()
		l.CostLines[i].LogID = l.ID
		if _, err := tx.Exec(ctx, lineQuery,
			l.CostLines[i].ID, l.ID, l.CostLines[i].ServiceTypeID, l.CostLines[i].Cost,
		); err != nil {
			return fmt.Errorf("failed to create cost line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit maintenance log: %w", err)
	}
	return nil
}

// GetLogByID retrieves a log entry with its cost lines
func (r *Repository) GetLogByID(ctx context.Context, id uuid.UUID) (*LogEntry, error) {
	query := `
		SELECT id, seq, vehicle_id, date, mileage, note, created_at
		FROM maintenance_logs WHERE id = $1
	`
	l := &LogEntry{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Seq, &l.VehicleID, &l.Date, &l.Mileage, &l.Note, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lines, err := r.costLinesForLogs(ctx, []uuid.UUID{l.ID})
	if err != nil {
		return nil, err
	}
	l.CostLines = lines[l.ID]
	if l.CostLines == nil {
		l.CostLines = []CostLine{}
	}
	return l, nil
}

// ListLogsByVehicle lists a vehicle's service history, newest first
func (r *Repository) ListLogsByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]LogEntry, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM maintenance_logs WHERE vehicle_id = $1`, vehicleID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count maintenance logs: %w", err)
	}

	query := `
		SELECT id, seq, vehicle_id, date, mileage, note, created_at
		FROM maintenance_logs
		WHERE vehicle_id = $1
		ORDER BY date DESC, seq DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, vehicleID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list maintenance logs: %w", err)
	}
	defer rows.Close()

	logs := []LogEntry{}
	ids := []uuid.UUID{}
	for rows.Next() {
		var l LogEntry
		if err := rows.Scan(&l.ID, &l.Seq, &l.VehicleID, &l.Date, &l.Mileage, &l.Note, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan maintenance log: %w", err)
		}
		l.CostLines = []CostLine{}
		logs = append(logs, l)
		ids = append(ids, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		lines, err := r.costLinesForLogs(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range logs {
			if ls, ok := lines[logs[i].ID]; ok {
				logs[i].CostLines = ls
			}
		}
	}
	return logs, total, nil
}

func (r *Repository) costLinesForLogs(ctx context.Context, logIDs []uuid.UUID) (map[uuid.UUID][]CostLine, error) {
	query := `
		SELECT id, log_id, service_type_id, cost
		FROM maintenance_cost_lines
		WHERE log_id = ANY($1)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, logIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[uuid.UUID][]CostLine)
	for rows.Next() {
		var cl CostLine
		if err := rows.Scan(&cl.ID, &cl.LogID, &cl.ServiceTypeID, &cl.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan cost line: %w", err)
		}
		lines[cl.LogID] = append(lines[cl.LogID], cl)
	}
	return lines, rows.Err()
}

// ========================================
// PROJECTION INPUTS
// ========================================

// GetVehicleSnapshot reads one vehicle's projection snapshot
func (r *Repository) GetVehicleSnapshot(ctx context.Context, vehicleID uuid.UUID) (*VehicleSnapshot, error) {
	query := `
		SELECT id, model_id, office_id, plate, mileage, created_at
		FROM vehicles WHERE id = $1
	`
	v := &VehicleSnapshot{}
	err := r.db.QueryRow(ctx, query, vehicleID).Scan(
		&v.VehicleID, &v.ModelID, &v.OfficeID, &v.Plate, &v.Mileage, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListVehicleSnapshots reads the projection snapshots of the working fleet.
// Inactive vehicles never appear on the due board, so they are filtered here.
func (r *Repository) ListVehicleSnapshots(ctx context.Context, officeID, vehicleID uuid.UUID) ([]VehicleSnapshot, error) {
	query := `
		SELECT id, model_id, office_id, plate, mileage, created_at
		FROM vehicles
		WHERE status != 'inactive'
	`
	args := []interface{}{}
	argPos := 1
	if officeID != uuid.Nil {
		query += fmt.Sprintf(" AND office_id = $%d", argPos)
		args = append(args, officeID)
		argPos++
	}
	if vehicleID != uuid.Nil {
		query += fmt.Sprintf(" AND id = $%d", argPos)
		args = append(args, vehicleID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []VehicleSnapshot{}
	for rows.Next() {
		var v VehicleSnapshot
		if err := rows.Scan(&v.VehicleID, &v.ModelID, &v.OfficeID, &v.Plate, &v.Mileage, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle snapshot: %w", err)
		}
		snapshots = append(snapshots, v)
	}
	return snapshots, rows.Err()
}

// ListServiceEvents flattens the log history to (vehicle, service type)
// events, one per cost line. Selection of the latest event per pair happens
// in Go, not in the query.
func (r *Repository) ListServiceEvents(ctx context.Context, officeID, vehicleID uuid.UUID) ([]ServiceEvent, error) {
	query := `
		SELECT l.vehicle_id, cl.service_type_id, l.date, l.mileage, l.seq
		FROM maintenance_logs l
		JOIN maintenance_cost_lines cl ON cl.log_id = l.id
		JOIN vehicles v ON v.id = l.vehicle_id
		WHERE v.status != 'inactive'
	`
	args := []interface{}{}
	argPos := 1
	if officeID != uuid.Nil {
		query += fmt.Sprintf(" AND v.office_id = $%d", argPos)
		args = append(args, officeID)
		argPos++
	}
	if vehicleID != uuid.Nil {
		query += fmt.Sprintf(" AND l.vehicle_id = $%d", argPos)
		args = append(args, vehicleID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list service events: %w", err)
	}
	defer rows.Close()

	events := []ServiceEvent{}
	for rows.Next() {
		var e ServiceEvent
		if err := rows.Scan(&e.VehicleID, &e.ServiceTypeID, &e.Date, &e.Mileage, &e.LogSeq); err != nil {
			return nil, fmt.Errorf("failed to scan service event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListServiceTypeRefs lists the catalog slice the projection labels rows with
func (r *Repository) ListServiceTypeRefs(ctx context.Context) ([]ServiceTypeRef, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, default_cost, is_active FROM service_types`)
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	defer rows.Close()

	refs := []ServiceTypeRef{}
	for rows.Next() {
		var st ServiceTypeRef
		if err := rows.Scan(&st.ID, &st.Name, &st.DefaultCost, &st.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan service type: %w", err)
		}
		refs = append(refs, st)
	}
	return refs, rows.Err()
}

// GetServiceTypeRef reads one service type
func (r *Repository) GetServiceTypeRef(ctx context.Context, id uuid.UUID) (*ServiceTypeRef, error) {
	query := `SELECT id, name, default_cost, is_active FROM service_types WHERE id = $1`
	st := &ServiceTypeRef{}
	err := r.db.QueryRow(ctx, query, id).Scan(&st.ID, &st.Name, &st.DefaultCost, &st.IsActive)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func scanPlans(rows pgx.Rows) ([]PlanEntry, error) {
	plans := []PlanEntry{}
	for rows.Next() {
		var p PlanEntry
		if err := rows.Scan(&p.ID, &p.ModelID, &p.ServiceTypeID, &p.IntervalKm, &p.IntervalDays,
			&p.RemindBeforeKm, &p.RemindBeforeDays, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
