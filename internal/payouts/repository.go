package payouts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles database operations for payouts
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new payouts repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreatePayout writes the payout header and all lines in one transaction
func (r *Repository) CreatePayout(ctx context.Context, p *Payout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	headerQuery := `
		INSERT INTO payouts (id, office_id, date_from, date_to, currency_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	p.ID = uuid.New()
	err = tx.QueryRow(ctx, headerQuery, p.ID, p.OfficeID, p.DateFrom, p.DateTo, p.CurrencyRate).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payout: %w", err)
	}

	lineQuery := `
		INSERT INTO payout_lines (id, payout_id, manager_id, revenue, percent_part, fixed_part, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range p.Lines {
		p.Lines[i].ID = uuid.New()
		p.Lines[i].PayoutID = p.ID
		if _, err := tx.Exec(ctx, lineQuery,
			p.Lines[i].ID, p.ID, p.Lines[i].ManagerID,
			p.Lines[i].Revenue, p.Lines[i].PercentPart, p.Lines[i].FixedPart, p.Lines[i].Total,
		); err != nil {
			return fmt.Errorf("failed to create payout line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit payout: %w", err)
	}
	return nil
}

// GetPayoutByID retrieves a payout with its lines
func (r *Repository) GetPayoutByID(ctx context.Context, id uuid.UUID) (*Payout, error) {
	query := `
		SELECT id, office_id, date_from, date_to, currency_rate, created_at
		FROM payouts WHERE id = $1
	`
	p := &Payout{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OfficeID, &p.DateFrom, &p.DateTo, &p.CurrencyRate, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lines, err := r.linesForPayout(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Lines = lines
	return p, nil
}

// ListPayouts lists an office's payout history, newest first
func (r *Repository) ListPayouts(ctx context.Context, officeID uuid.UUID, limit, offset int) ([]Payout, int64, error) {
	whereClause := ""
	args := []interface{}{}
	argPos := 1
	if officeID != uuid.Nil {
		whereClause = fmt.Sprintf("WHERE office_id = $%d", argPos)
		args = append(args, officeID)
		argPos++
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payouts %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payouts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, office_id, date_from, date_to, currency_rate, created_at
		FROM payouts %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payouts: %w", err)
	}
	defer rows.Close()

	payouts := []Payout{}
	for rows.Next() {
		var p Payout
		if err := rows.Scan(&p.ID, &p.OfficeID, &p.DateFrom, &p.DateTo, &p.CurrencyRate, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payout: %w", err)
		}
		p.Lines = []PayoutLine{}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range payouts {
		lines, err := r.linesForPayout(ctx, payouts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		payouts[i].Lines = lines
	}
	return payouts, total, nil
}

func (r *Repository) linesForPayout(ctx context.Context, payoutID uuid.UUID) ([]PayoutLine, error) {
	query := `
		SELECT id, payout_id, manager_id, revenue, percent_part, fixed_part, total
		FROM payout_lines WHERE payout_id = $1
		ORDER BY manager_id
	`
	rows, err := r.db.Query(ctx, query, payoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payout lines: %w", err)
	}
	defer rows.Close()

	lines := []PayoutLine{}
	for rows.Next() {
		var l PayoutLine
		if err := rows.Scan(&l.ID, &l.PayoutID, &l.ManagerID, &l.Revenue, &l.PercentPart, &l.FixedPart, &l.Total); err != nil {
			return nil, fmt.Errorf("failed to scan payout line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetOfficeSalary reads the office's split parameters
func (r *Repository) GetOfficeSalary(ctx context.Context, officeID uuid.UUID) (*OfficeSalary, error) {
	query := `SELECT id, salary_fixed_usd, salary_percent FROM offices WHERE id = $1`
	o := &OfficeSalary{}
	err := r.db.QueryRow(ctx, query, officeID).Scan(&o.OfficeID, &o.SalaryFixedUSD, &o.SalaryPercent)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ManagerRevenues sums order totals per manager for the period
func (r *Repository) ManagerRevenues(ctx context.Context, officeID uuid.UUID, from, to time.Time) ([]ManagerRevenue, error) {
	query := `
		SELECT manager_id, COALESCE(SUM(total), 0)
		FROM orders
		WHERE office_id = $1
		  AND status NOT IN ('draft', 'cancelled')
		  AND start_date >= $2 AND start_date < $3
		GROUP BY manager_id
	`
	rows, err := r.db.Query(ctx, query, officeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate manager revenues: %w", err)
	}
	defer rows.Close()

	revenues := []ManagerRevenue{}
	for rows.Next() {
		var mr ManagerRevenue
		if err := rows.Scan(&mr.ManagerID, &mr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan manager revenue: %w", err)
		}
		revenues = append(revenues, mr)
	}
	return revenues, rows.Err()
}
