package renters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for renters
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new renters repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create creates a new renter
func (r *Repository) Create(ctx context.Context, rn *Renter) error {
	query := `
		INSERT INTO renters (id, first_name, last_name, phone, email, document_number, license_number, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	rn.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		rn.ID, rn.FirstName, rn.LastName, rn.Phone, rn.Email, rn.DocumentNumber, rn.LicenseNumber, rn.Note,
	).Scan(&rn.CreatedAt, &rn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create renter: %w", err)
	}
	return nil
}

// GetByID retrieves a renter by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Renter, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, document_number, license_number, note, created_at, updated_at
		FROM renters WHERE id = $1
	`
	rn := &Renter{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rn.ID, &rn.FirstName, &rn.LastName, &rn.Phone, &rn.Email,
		&rn.DocumentNumber, &rn.LicenseNumber, &rn.Note, &rn.CreatedAt, &rn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rn, nil
}

// List lists renters with an optional name/phone search
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]Renter, int64, error) {
	whereClause := ""
	args := []interface{}{}
	argPos := 1
	if search != "" {
		whereClause = fmt.Sprintf(
			"WHERE first_name ILIKE $%d OR last_name ILIKE $%d OR phone ILIKE $%d",
			argPos, argPos, argPos,
		)
		args = append(args, "%"+search+"%")
		argPos++
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM renters %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count renters: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, phone, email, document_number, license_number, note, created_at, updated_at
		FROM renters %s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list renters: %w", err)
	}
	defer rows.Close()

	result := []Renter{}
	for rows.Next() {
		var rn Renter
		if err := rows.Scan(&rn.ID, &rn.FirstName, &rn.LastName, &rn.Phone, &rn.Email,
			&rn.DocumentNumber, &rn.LicenseNumber, &rn.Note, &rn.CreatedAt, &rn.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan renter: %w", err)
		}
		result = append(result, rn)
	}
	return result, total, rows.Err()
}

// Update updates a renter
func (r *Repository) Update(ctx context.Context, rn *Renter) error {
	query := `
		UPDATE renters
		SET first_name = $2, last_name = $3, phone = $4, email = $5,
		    document_number = $6, license_number = $7, note = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		rn.ID, rn.FirstName, rn.LastName, rn.Phone, rn.Email, rn.DocumentNumber, rn.LicenseNumber, rn.Note,
	).Scan(&rn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update renter: %w", err)
	}
	return nil
}

// GetStats sums the renter's finished orders
func (r *Repository) GetStats(ctx context.Context, renterID uuid.UUID) (*Stats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE renter_id = $1 AND status = 'done'
	`
	s := &Stats{RenterID: renterID}
	err := r.db.QueryRow(ctx, query, renterID).Scan(&s.CompletedRentals, &s.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate renter stats: %w", err)
	}
	return s, nil
}
