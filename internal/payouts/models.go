package payouts

import (
	"time"

	"github.com/google/uuid"
)

// Payout is one computed salary period for an office. CurrencyRate is the
// USD conversion rate snapshotted at computation time, so recalculating an
// old period with a newer rate is an explicit, visible act.
type Payout struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	OfficeID     uuid.UUID    `json:"office_id" db:"office_id"`
	DateFrom     time.Time    `json:"date_from" db:"date_from"`
	DateTo       time.Time    `json:"date_to" db:"date_to"`
	CurrencyRate float64      `json:"currency_rate" db:"currency_rate"`
	Lines        []PayoutLine `json:"lines"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// PayoutLine is one manager's share of a payout period
type PayoutLine struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PayoutID    uuid.UUID `json:"payout_id" db:"payout_id"`
	ManagerID   uuid.UUID `json:"manager_id" db:"manager_id"`
	Revenue     float64   `json:"revenue" db:"revenue"`
	PercentPart float64   `json:"percent_part" db:"percent_part"`
	FixedPart   float64   `json:"fixed_part" db:"fixed_part"`
	Total       float64   `json:"total" db:"total"`
}

// ManagerRevenue is one manager's order revenue over a period
type ManagerRevenue struct {
	ManagerID uuid.UUID `json:"manager_id" db:"manager_id"`
	Revenue   float64   `json:"revenue" db:"revenue"`
}

// OfficeSalary is the office slice the split needs
type OfficeSalary struct {
	OfficeID       uuid.UUID `db:"id"`
	SalaryFixedUSD float64   `db:"salary_fixed_usd"`
	SalaryPercent  float64   `db:"salary_percent"`
}

// RecalculateRequest asks for a payout period to be computed
type RecalculateRequest struct {
	OfficeID     uuid.UUID `json:"office_id" binding:"required"`
	DateFrom     time.Time `json:"date_from" binding:"required"`
	DateTo       time.Time `json:"date_to" binding:"required"`
	CurrencyRate float64   `json:"currency_rate" binding:"required"`
}
