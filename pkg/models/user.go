package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents user role type
type UserRole string

const (
	// RoleAgent handles day-to-day rental desk operations.
	RoleAgent UserRole = "agent"
	// RoleManager runs an office: fleet, tariffs and payouts.
	RoleManager UserRole = "manager"
	// RoleMechanic records maintenance work.
	RoleMechanic UserRole = "mechanic"
	RoleAdmin    UserRole = "admin"
)

// User represents a back-office user (rental agents, office managers, mechanics)
type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	Role      UserRole   `json:"role" db:"role"`
	OfficeID  *uuid.UUID `json:"office_id,omitempty" db:"office_id"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
