package models

import (
	"github.com/shopspring/decimal"
)

// Brand is the manufacturer attached to a car. Cars may have none.
type Brand struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Feature is a named car feature such as "Bluetooth".
type Feature struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CarImage is an additional gallery image.
type CarImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Car is the public snapshot of a rentable car.
type Car struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Brand         *Brand              `json:"brand,omitempty"`
	Year          int                 `json:"year"`
	PricePerDay   decimal.Decimal     `json:"price_per_day"`
	CarType       string              `json:"car_type"`
	Description   string              `json:"description,omitempty"`
	Transmission  string              `json:"transmission"`
	FuelType      string              `json:"fuel_type"`
	Image         string              `json:"image,omitempty"`
	Color         string              `json:"color,omitempty"`
	LicensePlate  string              `json:"license_plate,omitempty"`
	Features      []Feature           `json:"features,omitempty"`
	Speed         decimal.NullDecimal `json:"speed"`
	Time          decimal.NullDecimal `json:"time"` // 0-60 mph, seconds
	Horsepower    *int                `json:"horsepower"`
	IsAvailable   bool                `json:"is_available"`
	Featured      bool                `json:"featured"`
	Images        []CarImage          `json:"images,omitempty"`
	AverageRating float64             `json:"average_rating"`
	ReviewCount   int                 `json:"review_count"`
}

// BrandName returns the brand's name or "" when the car has no brand.
func (c Car) BrandName() string {
	if c.Brand == nil {
		return ""
	}
	return c.Brand.Name
}

// FeatureNames returns the names of the car's features in API order.
func (c Car) FeatureNames() []string {
	names := make([]string, 0, len(c.Features))
	for _, f := range c.Features {
		names = append(names, f.Name)
	}
	return names
}

// Availability is the response of the availability check for a date range.
type Availability struct {
	Available   bool             `json:"available"`
	Message     string           `json:"message,omitempty"`
	Error       string           `json:"error,omitempty"`
	Conflicting *BookingInterval `json:"conflicting_booking,omitempty"`
}

// BookingInterval is a pickup/return date pair, formatted YYYY-MM-DD.
type BookingInterval struct {
	PickupDate string `json:"pickup_date"`
	ReturnDate string `json:"return_date"`
}
