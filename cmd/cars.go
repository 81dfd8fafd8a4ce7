package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Sam-eff/car-rental-site/internal/formatter"
	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/Sam-eff/car-rental-site/internal/stores"
	"github.com/urfave/cli/v3"
)

// CarsList lists cars from the API (or the local cache with --offline) and refreshes the cache.
func (r *Runner) CarsList(ctx context.Context, cmd *cli.Command) error {
	search := cmd.String("search")
	featured := cmd.Bool("featured")
	brandID := cmd.Int64("brand")

	if search != "" && (featured || brandID > 0) {
		return fmt.Errorf("%w: --search cannot be combined with --featured or --brand", shared.ErrInvalidFlag)
	}
	if featured && brandID > 0 {
		return fmt.Errorf("%w: --featured cannot be combined with --brand", shared.ErrInvalidFlag)
	}

	var cars []models.Car
	var err error

	if cmd.Bool("offline") {
		if r.cars == nil {
			return fmt.Errorf("%w: car cache not initialized", shared.ErrServiceUnavailable)
		}
		if cars, err = r.cars.List(search); err != nil {
			return err
		}
		r.logger.Debug("listing cached cars", "count", len(cars))
	} else {
		if err := r.requireRental(); err != nil {
			return err
		}

		switch {
		case featured:
			cars, err = r.rental.FeaturedCars(ctx)
		case brandID > 0:
			cars, err = r.rental.CarsByBrand(ctx, brandID)
		default:
			cars, err = r.rental.Cars(ctx, search)
		}
		if err != nil {
			return fmt.Errorf("failed to list cars: %w", err)
		}
		r.cacheCars(cars)
	}

	if cmd.Bool("json") {
		return r.writeJSON(cars, true)
	}

	if len(cars) == 0 {
		return r.writePlain("No cars found\n")
	}

	// Wishlist marks need a session; comparison marks never do.
	if !cmd.Bool("offline") {
		if err := r.start(ctx); err != nil {
			r.logger.Debug("skipping wishlist marks", "error", err)
		}
	}
	return r.writeBytes(formatter.CarsToText(cars, r.marks))
}

// CarsShow prints a single car, falling back to the cache when the API is unreachable.
func (r *Runner) CarsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	car, err := r.lookupCar(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(car, true)
	}

	if err := r.writeBytes(formatter.CarDetail(*car, r.config.API.BaseURL)); err != nil {
		return err
	}

	imageURL := shared.ImageURL(r.config.API.BaseURL, car.Image)

	if path := cmd.String("image"); path != "" {
		data, err := formatter.DownloadImage(ctx, r.httpClient, imageURL)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		if err := r.writePlain("Image saved to %s\n", path); err != nil {
			return err
		}
	}

	if cmd.Bool("open") {
		r.logger.Info("opening image", "url", imageURL)
		if err := shared.OpenBrowser(imageURL); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}

// CarsAvailability checks a date range against existing bookings.
func (r *Runner) CarsAvailability(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.requireRental(); err != nil {
		return err
	}

	availability, err := r.rental.CheckAvailability(ctx, id, cmd.String("pickup"), cmd.String("return"))
	if err != nil {
		return fmt.Errorf("availability check failed: %w", err)
	}

	return r.writeBytes(formatter.AvailabilityToText(*availability))
}

// BrandsList prints every brand with its ID.
func (r *Runner) BrandsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRental(); err != nil {
		return err
	}

	brands, err := r.rental.Brands(ctx)
	if err != nil {
		return fmt.Errorf("failed to list brands: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(brands, true)
	}

	var buf bytes.Buffer
	for _, b := range brands {
		fmt.Fprintf(&buf, "%4d  %s\n", b.ID, b.Name)
	}
	return r.writeBytes(buf.Bytes())
}

// CarsReviews prints the reviews left for a car.
func (r *Runner) CarsReviews(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.requireRental(); err != nil {
		return err
	}

	reviews, err := r.rental.CarReviews(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(reviews, true)
	}
	if len(reviews) == 0 {
		return r.writePlain("No reviews yet\n")
	}
	return r.writeBytes(formatter.ReviewsToText(reviews))
}

// lookupCar fetches a car from the API and caches it, or reads the cached snapshot when the call fails.
func (r *Runner) lookupCar(ctx context.Context, id int64) (*models.Car, error) {
	if err := r.requireRental(); err != nil {
		return nil, err
	}

	car, err := r.rental.Car(ctx, id)
	if err == nil {
		r.cacheCars([]models.Car{*car})
		return car, nil
	}

	if r.cars != nil && !errors.Is(err, shared.ErrCarNotFound) {
		if cached, cacheErr := r.cars.Get(id); cacheErr == nil {
			r.logger.Warn("API unavailable, using cached snapshot", "car", id, "error", err)
			return cached, nil
		}
	}
	return nil, err
}

func (r *Runner) cacheCars(cars []models.Car) {
	if r.cars == nil || len(cars) == 0 {
		return
	}
	if err := r.cars.SaveAll(cars); err != nil {
		r.logger.Warn("failed to cache cars", "error", err)
	}
}

// marks labels cars that are selected for comparison or saved to the wishlist.
func (r *Runner) marks(c models.Car) string {
	if r.provider == nil {
		return ""
	}

	labels := []string{}
	if r.provider.Comparison.Contains(c.ID) {
		labels = append(labels, "compare")
	}
	if r.provider.Wishlist.State() == stores.Ready && r.provider.Wishlist.Contains(c.ID) {
		labels = append(labels, "wishlist")
	}
	return strings.Join(labels, ", ")
}

func parseID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: ID is required", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: ID must be a positive integer, got %q", shared.ErrInvalidArgument, s)
	}
	return id, nil
}
