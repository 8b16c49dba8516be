package tariffs

import (
	"time"

	"github.com/google/uuid"
)

// PeriodType distinguishes hourly from daily pricing
type PeriodType string

const (
	PeriodHour PeriodType = "hour"
	PeriodDay  PeriodType = "day"
)

// ValidPeriodTypes contains all accepted period types
var ValidPeriodTypes = map[PeriodType]bool{
	PeriodHour: true,
	PeriodDay:  true,
}

// Tariff is one price point for a vehicle model. Daily tariffs form a
// ladder: MinPeriod is the smallest rental length in days the price applies
// to, and resolution picks the largest rung not exceeding the rental length.
// The (model, period type, min period) triple is unique.
type Tariff struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	ModelID    uuid.UUID  `json:"model_id" db:"model_id"`
	PeriodType PeriodType `json:"period_type" db:"period_type"`
	MinPeriod  int        `json:"min_period" db:"min_period"`
	Price      float64    `json:"price" db:"price"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateTariffRequest is the request body for creating a tariff
type CreateTariffRequest struct {
	ModelID    uuid.UUID  `json:"model_id" binding:"required"`
	PeriodType PeriodType `json:"period_type" binding:"required"`
	MinPeriod  int        `json:"min_period"`
	Price      float64    `json:"price" binding:"required"`
}

// UpdateTariffRequest is the request body for updating a tariff price
type UpdateTariffRequest struct {
	Price *float64 `json:"price,omitempty"`
}

// Quote is the resolved price pair for a rental length
type Quote struct {
	ModelID     uuid.UUID `json:"model_id"`
	RentalDays  int       `json:"rental_days"`
	DailyTariff *Tariff   `json:"daily_tariff,omitempty"`
	HourlyPrice float64   `json:"hourly_price"`
}
