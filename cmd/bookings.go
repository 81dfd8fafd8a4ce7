package main

import (
	"context"
	"fmt"

	"github.com/Sam-eff/car-rental-site/internal/formatter"
	"github.com/Sam-eff/car-rental-site/internal/services"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/urfave/cli/v3"
)

// BookingsList prints the authenticated user's bookings, newest first.
func (r *Runner) BookingsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	bookings, err := r.rental.Bookings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(bookings, true)
	}
	if len(bookings) == 0 {
		return r.writePlain("No bookings yet\n")
	}
	return r.writeBytes(formatter.BookingsToText(bookings))
}

// BookingsShow prints one booking.
func (r *Runner) BookingsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	booking, err := r.rental.Booking(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(booking, true)
	}
	return r.writeBytes(formatter.BookingDetail(*booking))
}

// BookingsCreate reserves a car for a date range after a final availability check.
//
// The booking is created pending. Payment happens on the website.
func (r *Runner) BookingsCreate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("car"))
	if err != nil {
		return err
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	car, err := r.rental.Car(ctx, id)
	if err != nil {
		return err
	}

	pickup, ret := cmd.String("pickup"), cmd.String("return")
	req, err := services.QuoteBooking(*car, pickup, ret)
	if err != nil {
		return err
	}

	availability, err := r.rental.CheckAvailability(ctx, id, pickup, ret)
	if err != nil {
		return fmt.Errorf("availability check failed: %w", err)
	}
	if !availability.Available {
		reason := availability.Error
		if reason == "" {
			reason = "select different dates"
		}
		return fmt.Errorf("%w: %s", shared.ErrCarUnavailable, reason)
	}

	r.logger.Info("creating booking", "car", id, "pickup", pickup, "return", ret, "days", req.TotalDays)
	booking, err := r.rental.CreateBooking(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(booking, true)
	}
	return r.writePlain("✓ Booked %s from %s to %s: %d day(s), $%s (booking #%d, %s)\n",
		booking.Car.Name, booking.PickupDate, booking.ReturnDate, booking.TotalDays,
		booking.TotalCost.StringFixed(2), booking.ID, booking.Status)
}

// BookingsCancel cancels a pending booking.
func (r *Runner) BookingsCancel(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	booking, err := r.rental.Booking(ctx, id)
	if err != nil {
		return err
	}
	if !booking.Cancellable() {
		return fmt.Errorf("%w: booking #%d is %s, only pending bookings can be cancelled", shared.ErrNotCancellable, id, booking.Status)
	}

	if _, err := r.rental.CancelBooking(ctx, id); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	r.logger.Info("cancelled booking", "booking", id)
	return r.writePlain("✓ Booking #%d cancelled\n", id)
}
