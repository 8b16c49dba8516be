package renters

import (
	"time"

	"github.com/google/uuid"
)

// Renter is a customer identity record
type Renter struct {
	ID             uuid.UUID `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Phone          string    `json:"phone" db:"phone"`
	Email          string    `json:"email" db:"email"`
	DocumentNumber string    `json:"document_number" db:"document_number"`
	LicenseNumber  string    `json:"license_number" db:"license_number"`
	Note           string    `json:"note" db:"note"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Stats aggregates a renter's completed rental history
type Stats struct {
	RenterID         uuid.UUID `json:"renter_id"`
	CompletedRentals int64     `json:"completed_rentals"`
	TotalSpent       float64   `json:"total_spent"`
}

// CreateRenterRequest is the request body for registering a renter
type CreateRenterRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	DocumentNumber string `json:"document_number"`
	LicenseNumber  string `json:"license_number"`
	Note           string `json:"note"`
}

// UpdateRenterRequest is the request body for updating a renter
type UpdateRenterRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`
	LicenseNumber  *string `json:"license_number,omitempty"`
	Note           *string `json:"note,omitempty"`
}

// RenterListResponse wraps a page of renters
type RenterListResponse struct {
	Renters []Renter `json:"renters"`
}
