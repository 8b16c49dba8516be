package fleet

import (
	"time"

	"github.com/google/uuid"
)

// VehicleStatus represents the rental status of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusBooked      VehicleStatus = "booked"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	// VehicleStatusInactive removes the vehicle from the working fleet;
	// inactive vehicles are excluded from the maintenance due board.
	VehicleStatusInactive VehicleStatus = "inactive"
)

// ValidStatuses contains all accepted vehicle statuses
var ValidStatuses = map[VehicleStatus]bool{
	VehicleStatusAvailable:   true,
	VehicleStatusRented:      true,
	VehicleStatusBooked:      true,
	VehicleStatusMaintenance: true,
	VehicleStatusInactive:    true,
}

// Office is a rental location. The payout parameters feed the manager
// salary split: fixed part in USD plus a percentage of period revenue.
type Office struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	City           string    `json:"city" db:"city"`
	Country        string    `json:"country" db:"country"`
	Currency       string    `json:"currency" db:"currency"`
	SalaryFixedUSD float64   `json:"salary_fixed_usd" db:"salary_fixed_usd"`
	SalaryPercent  float64   `json:"salary_percent" db:"salary_percent"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleModel groups vehicles of the same make and model. Maintenance
// plans are defined per model and cascade with it.
type VehicleModel struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Manufacturer string    `json:"manufacturer" db:"manufacturer"`
	Name         string    `json:"name" db:"name"`
	VehicleType  string    `json:"vehicle_type" db:"vehicle_type"`
	Transmission string    `json:"transmission" db:"transmission"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Vehicle is a single fleet unit
type Vehicle struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	ModelID       uuid.UUID     `json:"model_id" db:"model_id"`
	OfficeID      uuid.UUID     `json:"office_id" db:"office_id"`
	Plate         string        `json:"plate" db:"plate"`
	Year          int           `json:"year" db:"year"`
	PurchasePrice float64       `json:"purchase_price" db:"purchase_price"`
	Mileage       int           `json:"mileage" db:"mileage"`
	Status        VehicleStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateOfficeRequest is the request body for creating an office
type CreateOfficeRequest struct {
	Name           string  `json:"name" binding:"required"`
	City           string  `json:"city" binding:"required"`
	Country        string  `json:"country" binding:"required"`
	Currency       string  `json:"currency" binding:"required,len=3"`
	SalaryFixedUSD float64 `json:"salary_fixed_usd"`
	SalaryPercent  float64 `json:"salary_percent"`
}

// UpdateOfficeRequest is the request body for updating an office
type UpdateOfficeRequest struct {
	Name           *string  `json:"name,omitempty"`
	City           *string  `json:"city,omitempty"`
	Country        *string  `json:"country,omitempty"`
	Currency       *string  `json:"currency,omitempty"`
	SalaryFixedUSD *float64 `json:"salary_fixed_usd,omitempty"`
	SalaryPercent  *float64 `json:"salary_percent,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

// CreateModelRequest is the request body for creating a vehicle model
type CreateModelRequest struct {
	Manufacturer string `json:"manufacturer" binding:"required"`
	Name         string `json:"name" binding:"required"`
	VehicleType  string `json:"vehicle_type"`
	Transmission string `json:"transmission"`
}

// CreateVehicleRequest is the request body for registering a vehicle
type CreateVehicleRequest struct {
	ModelID       uuid.UUID `json:"model_id" binding:"required"`
	OfficeID      uuid.UUID `json:"office_id" binding:"required"`
	Plate         string    `json:"plate" binding:"required"`
	Year          int       `json:"year" binding:"required"`
	PurchasePrice float64   `json:"purchase_price"`
	Mileage       int       `json:"mileage"`
}

// UpdateVehicleRequest is the request body for updating vehicle details
type UpdateVehicleRequest struct {
	ModelID       *uuid.UUID `json:"model_id,omitempty"`
	OfficeID      *uuid.UUID `json:"office_id,omitempty"`
	Plate         *string    `json:"plate,omitempty"`
	Year          *int       `json:"year,omitempty"`
	PurchasePrice *float64   `json:"purchase_price,omitempty"`
}

// UpdateOdometerRequest is the request body for recording a new odometer reading
type UpdateOdometerRequest struct {
	Mileage int `json:"mileage" binding:"required"`
}

// UpdateStatusRequest is the request body for changing vehicle status
type UpdateStatusRequest struct {
	Status VehicleStatus `json:"status" binding:"required"`
}

// VehicleListResponse wraps a page of vehicles
type VehicleListResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
}
