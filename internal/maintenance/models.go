package maintenance

import (
	"time"

	"github.com/google/uuid"
)

// Urgency color codes for the due board. Overdue outranks due-soon.
const (
	UrgencyOK      = 0
	UrgencyOverdue = 1
	UrgencyDueSoon = 2
)

// PlanEntry configures the service cycle for one (vehicle model, service type)
// pair. A zero interval means that dimension is not tracked; an entry with
// both intervals zero still projects a row, just an empty one.
type PlanEntry struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ModelID          uuid.UUID `json:"model_id" db:"model_id"`
	ServiceTypeID    uuid.UUID `json:"service_type_id" db:"service_type_id"`
	IntervalKm       int       `json:"interval_km" db:"interval_km"`
	IntervalDays     int       `json:"interval_days" db:"interval_days"`
	RemindBeforeKm   int       `json:"remind_before_km" db:"remind_before_km"`
	RemindBeforeDays int       `json:"remind_before_days" db:"remind_before_days"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// LogEntry is one performed service visit. Seq is a monotonically increasing
// insertion counter used to break ties between logs sharing a date.
type LogEntry struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Seq       int64      `json:"seq" db:"seq"`
	VehicleID uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	Date      time.Time  `json:"date" db:"date"`
	Mileage   int        `json:"mileage" db:"mileage"`
	Note      string     `json:"note" db:"note"`
	CostLines []CostLine `json:"cost_lines"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// CostLine ties a log entry to one service type with its cost
type CostLine struct {
	ID            uuid.UUID `json:"id" db:"id"`
	LogID         uuid.UUID `json:"log_id" db:"log_id"`
	ServiceTypeID uuid.UUID `json:"service_type_id" db:"service_type_id"`
	Cost          float64   `json:"cost" db:"cost"`
}

// VehicleSnapshot is the slice of vehicle state the projection needs.
// Snapshots are read fresh on every projection pass; inactive vehicles
// are excluded at query time.
type VehicleSnapshot struct {
	VehicleID uuid.UUID `json:"vehicle_id" db:"id"`
	ModelID   uuid.UUID `json:"model_id" db:"model_id"`
	OfficeID  uuid.UUID `json:"office_id" db:"office_id"`
	Plate     string    `json:"plate" db:"plate"`
	Mileage   int       `json:"mileage" db:"mileage"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ServiceEvent is one performed service flattened to a single service type:
// a log entry with three cost lines yields three events. The projection
// selects the latest event per (vehicle, service type) pair.
type ServiceEvent struct {
	VehicleID     uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	ServiceTypeID uuid.UUID `json:"service_type_id" db:"service_type_id"`
	Date          time.Time `json:"date" db:"date"`
	Mileage       int       `json:"mileage" db:"mileage"`
	LogSeq        int64     `json:"log_seq" db:"log_seq"`
}

// PairKey identifies one (vehicle, service type) pair on the due board
type PairKey struct {
	VehicleID     uuid.UUID
	ServiceTypeID uuid.UUID
}

// LatestService is the winning service event for a pair
type LatestService struct {
	Date    time.Time
	Mileage int
	LogSeq  int64
}

// DueRow is one derived row of the due board. It is recomputed on every
// read and never stored. Projection fields are nil when the corresponding
// dimension is not tracked by the plan.
type DueRow struct {
	VehicleID          uuid.UUID  `json:"vehicle_id"`
	Plate              string     `json:"plate"`
	ModelID            uuid.UUID  `json:"model_id"`
	OfficeID           uuid.UUID  `json:"office_id"`
	ServiceTypeID      uuid.UUID  `json:"service_type_id"`
	ServiceTypeName    string     `json:"service_type_name"`
	LastServiceDate    time.Time  `json:"last_service_date"`
	LastServiceMileage int        `json:"last_service_mileage"`
	CurrentMileage     int        `json:"current_mileage"`
	NextServiceDate    *time.Time `json:"next_service_date,omitempty"`
	NextServiceMileage *int       `json:"next_service_mileage,omitempty"`
	KmToDue            *int       `json:"km_to_due,omitempty"`
	DaysToDue          *int       `json:"days_to_due,omitempty"`
	IsDue              bool       `json:"is_due"`
	Overdue            bool       `json:"overdue"`
	UrgencyColor       int        `json:"urgency_color"`
}

// ServiceTypeRef is the catalog slice the maintenance feature reads
type ServiceTypeRef struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DefaultCost float64   `json:"default_cost" db:"default_cost"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// CreatePlanRequest is the request body for creating a plan entry
type CreatePlanRequest struct {
	ModelID          uuid.UUID `json:"model_id" binding:"required"`
	ServiceTypeID    uuid.UUID `json:"service_type_id" binding:"required"`
	IntervalKm       int       `json:"interval_km"`
	IntervalDays     int       `json:"interval_days"`
	RemindBeforeKm   int       `json:"remind_before_km"`
	RemindBeforeDays int       `json:"remind_before_days"`
}

// UpdatePlanRequest is the request body for updating a plan entry
type UpdatePlanRequest struct {
	IntervalKm       *int `json:"interval_km,omitempty"`
	IntervalDays     *int `json:"interval_days,omitempty"`
	RemindBeforeKm   *int `json:"remind_before_km,omitempty"`
	RemindBeforeDays *int `json:"remind_before_days,omitempty"`
}

// CostLineInput is one cost line of a log creation request
type CostLineInput struct {
	ServiceTypeID uuid.UUID `json:"service_type_id" binding:"required"`
	Cost          float64   `json:"cost"`
}

// CreateLogRequest is the request body for recording a performed service
type CreateLogRequest struct {
	VehicleID uuid.UUID       `json:"vehicle_id" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Mileage   int             `json:"mileage" binding:"required"`
	Note      string          `json:"note"`
	CostLines []CostLineInput `json:"cost_lines" binding:"required,min=1"`
}

// PerformServiceRequest identifies the single due row to close
type PerformServiceRequest struct {
	VehicleID     uuid.UUID `json:"vehicle_id" binding:"required"`
	ServiceTypeID uuid.UUID `json:"service_type_id" binding:"required"`
}

// DueListResponse wraps the due board
type DueListResponse struct {
	Rows []DueRow `json:"rows"`
}
