package services

import (
	"fmt"
	"math"
	"time"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the date format the booking endpoints expect.
const DateLayout = "2006-01-02"

// QuoteBooking builds the creation request for renting car from pickup to ret.
//
// Days are whole days rounded up and the cost is the daily price times the days.
// The return date must fall after the pickup date.
func QuoteBooking(car models.Car, pickup, ret string) (models.BookingRequest, error) {
	from, err := time.Parse(DateLayout, pickup)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("%w: pickup date %q is not YYYY-MM-DD", shared.ErrInvalidInput, pickup)
	}
	to, err := time.Parse(DateLayout, ret)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("%w: return date %q is not YYYY-MM-DD", shared.ErrInvalidInput, ret)
	}
	if !to.After(from) {
		return models.BookingRequest{}, fmt.Errorf("%w: return date must be after pickup date", shared.ErrInvalidInput)
	}

	days := int(math.Ceil(to.Sub(from).Hours() / 24))
	return models.BookingRequest{
		CarID:      car.ID,
		PickupDate: pickup,
		ReturnDate: ret,
		TotalDays:  days,
		TotalCost:  car.PricePerDay.Mul(decimal.NewFromInt(int64(days))),
	}, nil
}
