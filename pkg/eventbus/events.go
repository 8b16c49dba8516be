package eventbus

import (
	"time"

	"github.com/google/uuid"
)

// MaintenancePerformedData is emitted when a service action creates a
// maintenance log entry for a vehicle.
type MaintenancePerformedData struct {
	LogID         uuid.UUID `json:"log_id"`
	VehicleID     uuid.UUID `json:"vehicle_id"`
	ServiceTypeID uuid.UUID `json:"service_type_id"`
	Date          time.Time `json:"date"`
	Mileage       int       `json:"mileage"`
	Cost          float64   `json:"cost"`
	PerformedAt   time.Time `json:"performed_at"`
}

// OrderCreatedData is emitted when a rental order is drafted.
type OrderCreatedData struct {
	OrderID   uuid.UUID `json:"order_id"`
	OfficeID  uuid.UUID `json:"office_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	RenterID  uuid.UUID `json:"renter_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderStartedData is emitted when a rental begins and the vehicle is handed over.
type OrderStartedData struct {
	OrderID      uuid.UUID `json:"order_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	RenterID     uuid.UUID `json:"renter_id"`
	StartMileage int       `json:"start_mileage"`
	StartedAt    time.Time `json:"started_at"`
}

// OrderCompletedData is emitted when a rental is closed out.
type OrderCompletedData struct {
	OrderID     uuid.UUID `json:"order_id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	RenterID    uuid.UUID `json:"renter_id"`
	EndMileage  int       `json:"end_mileage"`
	Total       float64   `json:"total"`
	Currency    string    `json:"currency"`
	CompletedAt time.Time `json:"completed_at"`
}

// OrderCancelledData is emitted when a rental order is cancelled.
type OrderCancelledData struct {
	OrderID     uuid.UUID `json:"order_id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	FromStatus  string    `json:"from_status"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// OdometerUpdatedData is emitted when a vehicle's odometer reading changes.
type OdometerUpdatedData struct {
	VehicleID       uuid.UUID `json:"vehicle_id"`
	PreviousMileage int       `json:"previous_mileage"`
	Mileage         int       `json:"mileage"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PayoutRecalculatedData is emitted when a payout period is recomputed.
type PayoutRecalculatedData struct {
	PayoutID       uuid.UUID `json:"payout_id"`
	OfficeID       uuid.UUID `json:"office_id"`
	DateFrom       time.Time `json:"date_from"`
	DateTo         time.Time `json:"date_to"`
	ManagerCount   int       `json:"manager_count"`
	TotalAmount    float64   `json:"total_amount"`
	RecalculatedAt time.Time `json:"recalculated_at"`
}
