package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is a reservation owned by the authenticated user.
type Booking struct {
	ID         int64           `json:"id"`
	User       int64           `json:"user"`
	Username   string          `json:"user_username,omitempty"`
	Car        Car             `json:"car"`
	PickupDate string          `json:"pickup_date"`
	ReturnDate string          `json:"return_date"`
	TotalDays  int             `json:"total_days"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Status     BookingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Cancellable reports whether the booking can still be cancelled by its owner.
func (b Booking) Cancellable() bool {
	return b.Status == BookingPending || b.Status == ""
}

// BookingRequest is the body of a booking creation.
type BookingRequest struct {
	CarID      int64           `json:"car_id"`
	PickupDate string          `json:"pickup_date"`
	ReturnDate string          `json:"return_date"`
	TotalDays  int             `json:"total_days"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}
