package orders

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the rental order lifecycle state
type OrderStatus string

const (
	StatusDraft     OrderStatus = "draft"
	StatusActive    OrderStatus = "active"
	StatusDone      OrderStatus = "done"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is a rental agreement. Tariff prices are snapshotted at creation
// time so later tariff edits never reprice existing orders.
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	OfficeID      uuid.UUID   `json:"office_id" db:"office_id"`
	VehicleID     uuid.UUID   `json:"vehicle_id" db:"vehicle_id"`
	RenterID      uuid.UUID   `json:"renter_id" db:"renter_id"`
	ManagerID     uuid.UUID   `json:"manager_id" db:"manager_id"`
	RentalDays    int         `json:"rental_days" db:"rental_days"`
	RentalHours   int         `json:"rental_hours" db:"rental_hours"`
	StartDate     time.Time   `json:"start_date" db:"start_date"`
	EndDate       time.Time   `json:"end_date" db:"end_date"`
	StartMileage  *int        `json:"start_mileage,omitempty" db:"start_mileage"`
	EndMileage    *int        `json:"end_mileage,omitempty" db:"end_mileage"`
	TariffID      uuid.UUID   `json:"tariff_id" db:"tariff_id"`
	TariffPrice   float64     `json:"tariff_price" db:"tariff_price"`
	HourlyPrice   float64     `json:"hourly_price" db:"hourly_price"`
	ExtraExpenses float64     `json:"extra_expenses" db:"extra_expenses"`
	Deposit       float64     `json:"deposit" db:"deposit"`
	Total         float64     `json:"total" db:"total"`
	Status        OrderStatus `json:"status" db:"status"`
	Note          string      `json:"note" db:"note"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// VehicleRef is the vehicle slice the order lifecycle reads and writes
type VehicleRef struct {
	ID       uuid.UUID `db:"id"`
	ModelID  uuid.UUID `db:"model_id"`
	OfficeID uuid.UUID `db:"office_id"`
	Mileage  int       `db:"mileage"`
	Status   string    `db:"status"`
}

// CreateOrderRequest is the request body for drafting an order
type CreateOrderRequest struct {
	VehicleID     uuid.UUID `json:"vehicle_id" binding:"required"`
	RenterID      uuid.UUID `json:"renter_id" binding:"required"`
	ManagerID     uuid.UUID `json:"manager_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	RentalDays    int       `json:"rental_days" binding:"required"`
	RentalHours   int       `json:"rental_hours"`
	ExtraExpenses float64   `json:"extra_expenses"`
	Deposit       float64   `json:"deposit"`
	Note          string    `json:"note"`
}

// UpdateOrderRequest adjusts a draft order; pricing is recomputed
type UpdateOrderRequest struct {
	StartDate     *time.Time `json:"start_date,omitempty"`
	RentalDays    *int       `json:"rental_days,omitempty"`
	RentalHours   *int       `json:"rental_hours,omitempty"`
	ExtraExpenses *float64   `json:"extra_expenses,omitempty"`
	Deposit       *float64   `json:"deposit,omitempty"`
	Note          *string    `json:"note,omitempty"`
}

// CompleteOrderRequest closes an active order
type CompleteOrderRequest struct {
	EndMileage int `json:"end_mileage" binding:"required"`
}

// OrderListResponse wraps a page of orders
type OrderListResponse struct {
	Orders []Order `json:"orders"`
}
