package fleet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for offices, models and vehicles
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new fleet repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ========================================
// OFFICES
// ========================================

// CreateOffice creates a new office
func (r *Repository) CreateOffice(ctx context.Context, o *Office) error {
	query := `
		INSERT INTO offices (id, name, city, country, currency, salary_fixed_usd, salary_percent, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	o.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		o.ID, o.Name, o.City, o.Country, o.Currency, o.SalaryFixedUSD, o.SalaryPercent, o.IsActive,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create office: %w", err)
	}
	return nil
}

// GetOfficeByID retrieves an office by ID
func (r *Repository) GetOfficeByID(ctx context.Context, id uuid.UUID) (*Office, error) {
	query := `
		SELECT id, name, city, country, currency, salary_fixed_usd, salary_percent, is_active, created_at, updated_at
		FROM offices WHERE id = $1
	`
	o := &Office{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.City, &o.Country, &o.Currency,
		&o.SalaryFixedUSD, &o.SalaryPercent, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOffices lists offices
func (r *Repository) ListOffices(ctx context.Context, includeInactive bool) ([]Office, error) {
	whereClause := ""
	if !includeInactive {
		whereClause = "WHERE is_active = true"
	}

	query := fmt.Sprintf(`
		SELECT id, name, city, country, currency, salary_fixed_usd, salary_percent, is_active, created_at, updated_at
		FROM offices %s
		ORDER BY name
	`, whereClause)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	defer rows.Close()

	items := make([]Office, 0)
	for rows.Next() {
		var o Office
		err := rows.Scan(&o.ID, &o.Name, &o.City, &o.Country, &o.Currency,
			&o.SalaryFixedUSD, &o.SalaryPercent, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		items = append(items, o)
	}
	return items, nil
}

// UpdateOffice updates an office
func (r *Repository) UpdateOffice(ctx context.Context, o *Office) error {
	query := `
		UPDATE offices SET
			name = $2, city = $3, country = $4, currency = $5,
			salary_fixed_usd = $6, salary_percent = $7, is_active = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		o.ID, o.Name, o.City, o.Country, o.Currency, o.SalaryFixedUSD, o.SalaryPercent, o.IsActive,
	).Scan(&o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update office: %w", err)
	}
	return nil
}

// ========================================
// MODELS
// ========================================

// CreateModel creates a new vehicle model
func (r *Repository) CreateModel(ctx context.Context, m *VehicleModel) error {
	query := `
		INSERT INTO vehicle_models (id, manufacturer, name, vehicle_type, transmission)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	m.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		m.ID, m.Manufacturer, m.Name, m.VehicleType, m.Transmission,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle model: %w", err)
	}
	return nil
}

// GetModelByID retrieves a vehicle model by ID
func (r *Repository) GetModelByID(ctx context.Context, id uuid.UUID) (*VehicleModel, error) {
	query := `
		SELECT id, manufacturer, name, vehicle_type, transmission, created_at, updated_at
		FROM vehicle_models WHERE id = $1
	`
	m := &VehicleModel{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Manufacturer, &m.Name, &m.VehicleType, &m.Transmission, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListModels lists vehicle models
func (r *Repository) ListModels(ctx context.Context) ([]VehicleModel, error) {
	query := `
		SELECT id, manufacturer, name, vehicle_type, transmission, created_at, updated_at
		FROM vehicle_models
		ORDER BY manufacturer, name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle models: %w", err)
	}
	defer rows.Close()

	items := make([]VehicleModel, 0)
	for rows.Next() {
		var m VehicleModel
		err := rows.Scan(&m.ID, &m.Manufacturer, &m.Name, &m.VehicleType, &m.Transmission, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle model: %w", err)
		}
		items = append(items, m)
	}
	return items, nil
}

// DeleteModel deletes a vehicle model. Maintenance plans cascade with it.
func (r *Repository) DeleteModel(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM vehicle_models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle model: %w", err)
	}
	return nil
}

// CountVehiclesByModel counts vehicles registered for the model
func (r *Repository) CountVehiclesByModel(ctx context.Context, modelID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE model_id = $1`, modelID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles for model: %w", err)
	}
	return total, nil
}

// ========================================
// VEHICLES
// ========================================

// CreateVehicle registers a new vehicle
func (r *Repository) CreateVehicle(ctx context.Context, v *Vehicle) error {
	query := `
		INSERT INTO vehicles (id, model_id, office_id, plate, year, purchase_price, mileage, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	v.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		v.ID, v.ModelID, v.OfficeID, v.Plate, v.Year, v.PurchasePrice, v.Mileage, v.Status,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// GetVehicleByID retrieves a vehicle by ID
func (r *Repository) GetVehicleByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	query := `
		SELECT id, model_id, office_id, plate, year, purchase_price, mileage, status, created_at, updated_at
		FROM vehicles WHERE id = $1
	`
	v := &Vehicle{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.ModelID, &v.OfficeID, &v.Plate, &v.Year, &v.PurchasePrice,
		&v.Mileage, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListVehicles lists vehicles with optional office and status filters
func (r *Repository) ListVehicles(ctx context.Context, officeID uuid.UUID, status VehicleStatus, limit, offset int) ([]Vehicle, int64, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if officeID != uuid.Nil {
		whereClause += fmt.Sprintf(" AND office_id = $%d", argPos)
		args = append(args, officeID)
		argPos++
	}
	if status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, status)
		argPos++
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM vehicles %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, model_id, office_id, plate, year, purchase_price, mileage, status, created_at, updated_at
		FROM vehicles %s
		ORDER BY plate
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	items := make([]Vehicle, 0)
	for rows.Next() {
		var v Vehicle
		err := rows.Scan(&v.ID, &v.ModelID, &v.OfficeID, &v.Plate, &v.Year, &v.PurchasePrice,
			&v.Mileage, &v.Status, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		items = append(items, v)
	}
	return items, total, nil
}

// UpdateVehicle updates vehicle details
func (r *Repository) UpdateVehicle(ctx context.Context, v *Vehicle) error {
	query := `
		UPDATE vehicles SET
			model_id = $2, office_id = $3, plate = $4, year = $5, purchase_price = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		v.ID, v.ModelID, v.OfficeID, v.Plate, v.Year, v.PurchasePrice,
	).Scan(&v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// UpdateVehicleMileage records a new odometer reading
func (r *Repository) UpdateVehicleMileage(ctx context.Context, vehicleID uuid.UUID, mileage int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE vehicles SET mileage = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		vehicleID, mileage,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle mileage: %w", err)
	}
	return nil
}

// UpdateVehicleStatus changes the vehicle status
func (r *Repository) UpdateVehicleStatus(ctx context.Context, vehicleID uuid.UUID, status VehicleStatus) error {
	_, err := r.db.Exec(ctx,
		`UPDATE vehicles SET status = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		vehicleID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}
	return nil
}
