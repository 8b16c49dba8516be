package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for orders
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new orders repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const orderColumns = `
	id, office_id, vehicle_id, renter_id, manager_id,
	rental_days, rental_hours, start_date, end_date, start_mileage, end_mileage,
	tariff_id, tariff_price, hourly_price, extra_expenses, deposit, total,
	status, note, created_at, updated_at
`

func scanOrder(row interface{ Scan(dest ...interface{}) error }, o *Order) error {
	return row.Scan(
		&o.ID, &o.OfficeID, &o.VehicleID, &o.RenterID, &o.ManagerID,
		&o.RentalDays, &o.RentalHours, &o.StartDate, &o.EndDate, &o.StartMileage, &o.EndMileage,
		&o.TariffID, &o.TariffPrice, &o.HourlyPrice, &o.ExtraExpenses, &o.Deposit, &o.Total,
		&o.Status, &o.Note, &o.CreatedAt, &o.UpdatedAt,
	)
}

// Create creates a new order
func (r *Repository) Create(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (
			id, office_id, vehicle_id, renter_id, manager_id,
			rental_days, rental_hours, start_date, end_date,
			tariff_id, tariff_price, hourly_price, extra_expenses, deposit, total,
			status, note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at
	`
	o.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		o.ID, o.OfficeID, o.VehicleID, o.RenterID, o.ManagerID,
		o.RentalDays, o.RentalHours, o.StartDate, o.EndDate,
		o.TariffID, o.TariffPrice, o.HourlyPrice, o.ExtraExpenses, o.Deposit, o.Total,
		o.Status, o.Note,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	o := &Order{}
	if err := scanOrder(r.db.QueryRow(ctx, query, id), o); err != nil {
		return nil, err
	}
	return o, nil
}

// List lists orders with optional office/renter/status filters
func (r *Repository) List(ctx context.Context, officeID, renterID uuid.UUID, status OrderStatus, limit, offset int) ([]Order, int64, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1
	if officeID != uuid.Nil {
		whereClause += fmt.Sprintf(" AND office_id = $%d", argPos)
		args = append(args, officeID)
		argPos++
	}
	if renterID != uuid.Nil {
		whereClause += fmt.Sprintf(" AND renter_id = $%d", argPos)
		args = append(args, renterID)
		argPos++
	}
	if status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, status)
		argPos++
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM orders %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// Update persists an order's mutable fields
func (r *Repository) Update(ctx context.Context, o *Order) error {
	query := `
		UPDATE orders
		SET rental_days = $2, rental_hours = $3, start_date = $4, end_date = $5,
		    start_mileage = $6, end_mileage = $7,
		    tariff_id = $8, tariff_price = $9, hourly_price = $10,
		    extra_expenses = $11, deposit = $12, total = $13,
		    status = $14, note = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		o.ID, o.RentalDays, o.RentalHours, o.StartDate, o.EndDate,
		o.StartMileage, o.EndMileage,
		o.TariffID, o.TariffPrice, o.HourlyPrice,
		o.ExtraExpenses, o.Deposit, o.Total,
		o.Status, o.Note,
	).Scan(&o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

// GetVehicleRef reads the vehicle slice the order lifecycle needs
func (r *Repository) GetVehicleRef(ctx context.Context, vehicleID uuid.UUID) (*VehicleRef, error) {
	query := `SELECT id, model_id, office_id, mileage, status FROM vehicles WHERE id = $1`
	v := &VehicleRef{}
	err := r.db.QueryRow(ctx, query, vehicleID).Scan(&v.ID, &v.ModelID, &v.OfficeID, &v.Mileage, &v.Status)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SetVehicleStatus updates a vehicle's status
func (r *Repository) SetVehicleStatus(ctx context.Context, vehicleID uuid.UUID, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1`, vehicleID, status)
	if err != nil {
		return fmt.Errorf("failed to set vehicle status: %w", err)
	}
	return nil
}

// SetVehicleMileage updates a vehicle's odometer reading
func (r *Repository) SetVehicleMileage(ctx context.Context, vehicleID uuid.UUID, mileage int) error {
	_, err := r.db.Exec(ctx, `UPDATE vehicles SET mileage = $2, updated_at = NOW() WHERE id = $1`, vehicleID, mileage)
	if err != nil {
		return fmt.Errorf("failed to set vehicle mileage: %w", err)
	}
	return nil
}

// RenterExists reports whether a renter exists
func (r *Repository) RenterExists(ctx context.Context, renterID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM renters WHERE id = $1)`, renterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check renter: %w", err)
	}
	return exists, nil
}
