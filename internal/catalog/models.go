package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType is a catalog entry for a kind of maintenance work
// (oil change, brake pads, chain kit, ...). Maintenance plans and log cost
// lines reference it, so it is deactivated rather than deleted while in use.
type ServiceType struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DefaultCost float64   `json:"default_cost" db:"default_cost"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateServiceTypeRequest is the request body for creating a service type
type CreateServiceTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	DefaultCost float64 `json:"default_cost"`
}

// UpdateServiceTypeRequest is the request body for updating a service type
type UpdateServiceTypeRequest struct {
	Name        *string  `json:"name,omitempty"`
	DefaultCost *float64 `json:"default_cost,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// ServiceTypeListResponse wraps a page of service types
type ServiceTypeListResponse struct {
	ServiceTypes []ServiceType `json:"service_types"`
}
