package models

import "time"

// Order lifecycle statuses
const (
	OrderStatusDraft     = "draft"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDone      = "done"
	OrderStatusCanceled  = "canceled"
)

// Payment statuses
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Vehicle types
const (
	VehicleSedan   = "sedan"
	VehicleMinivan = "minivan"
	VehicleSUV     = "suv"
)

type Order struct {
	ID             string     `json:"id"`
	CustomerID     string     `json:"customer_id"`
	Customer       *Customer  `json:"customer,omitempty"`
	PickupAt       time.Time  `json:"pickup_at"`
	FromLocation   string     `json:"from_location"`
	ToLocation     string     `json:"to_location"`
	VehicleType    string     `json:"vehicle_type,omitempty"`
	CarsCount      int        `json:"cars_count"`
	DriverName     string     `json:"driver_name,omitempty"`
	Price          string     `json:"price"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"payment_status"`
	PaymentDueDate *time.Time `json:"payment_due_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerID     string `json:"customer_id"`
	PickupAt       string `json:"pickup_at"`
	FromLocation   string `json:"from_location"`
	ToLocation     string `json:"to_location"`
	VehicleType    string `json:"vehicle_type"`
	CarsCount      *int   `json:"cars_count"`
	DriverName     string `json:"driver_name"`
	Price          string `json:"price"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"payment_status"`
	PaymentDueDate string `json:"payment_due_date"`
	Notes          string `json:"notes"`
}

// UpdateOrderRequest represents the request body for updating an order.
// Nil fields keep their current value.
type UpdateOrderRequest struct {
	CustomerID     *string `json:"customer_id"`
	PickupAt       *string `json:"pickup_at"`
	FromLocation   *string `json:"from_location"`
	ToLocation     *string `json:"to_location"`
	VehicleType    *string `json:"vehicle_type"`
	CarsCount      *int    `json:"cars_count"`
	DriverName     *string `json:"driver_name"`
	Price          *string `json:"price"`
	Status         *string `json:"status"`
	PaymentStatus  *string `json:"payment_status"`
	PaymentDueDate *string `json:"payment_due_date"`
	Notes          *string `json:"notes"`
}

// OrderFilter narrows ListOrders results
type OrderFilter struct {
	CustomerID string
	Status     string
	From       string // YYYY-MM-DD, inclusive
	To         string // YYYY-MM-DD, inclusive
}
