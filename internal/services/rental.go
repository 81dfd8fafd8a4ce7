// Rental backend [RentalService] implementation
//
// Typed wrappers over [APIService] for the catalog, authentication, booking, review and wishlist endpoints.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
)

// RentalService is the typed client of the rental backend.
type RentalService struct {
	api *APIService
}

// NewRentalService creates a [RentalService] on top of api.
func NewRentalService(api *APIService) *RentalService {
	return &RentalService{api: api}
}

// API returns the underlying raw client.
func (s *RentalService) API() *APIService {
	return s.api
}

// SetToken sets the bearer token used for authenticated endpoints.
func (s *RentalService) SetToken(token string) {
	s.api.SetToken(token)
}

// Login exchanges credentials for an access token.
//
// Calls POST /token/.
func (s *RentalService) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := s.doJSON(ctx, http.MethodPost, "/token/", creds, &out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", fmt.Errorf("%w: token response has no access token", shared.ErrAuthFailed)
	}
	return out.Access, nil
}

// Register creates an account.
//
// Calls POST /users/register/.
func (s *RentalService) Register(ctx context.Context, req models.RegisterRequest) error {
	return s.doJSON(ctx, http.MethodPost, "/users/register/", req, nil)
}

// Profile returns the authenticated user's profile.
//
// Calls GET /users/profile/.
func (s *RentalService) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := s.doJSON(ctx, http.MethodGet, "/users/profile/", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Cars lists the catalog.
//
// Calls GET /cars/ with an optional search term.
func (s *RentalService) Cars(ctx context.Context, search string) ([]models.Car, error) {
	path := "/cars/"
	if search != "" {
		path += "?" + url.Values{"search": {search}}.Encode()
	}
	return listOf[models.Car](ctx, s, path)
}

// FeaturedCars lists cars flagged as featured.
//
// Calls GET /cars/featured/.
func (s *RentalService) FeaturedCars(ctx context.Context) ([]models.Car, error) {
	return listOf[models.Car](ctx, s, "/cars/featured/")
}

// Car fetches a single car. A 404 wraps [shared.ErrCarNotFound].
//
// Calls GET /cars/{id}/.
func (s *RentalService) Car(ctx context.Context, id int64) (*models.Car, error) {
	var car models.Car
	if err := s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/cars/%d/", id), nil, &car); err != nil {
		if StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d: %w", shared.ErrCarNotFound, id, err)
		}
		return nil, err
	}
	return &car, nil
}

// Brands lists car brands.
//
// Calls GET /brands/.
func (s *RentalService) Brands(ctx context.Context) ([]models.Brand, error) {
	return listOf[models.Brand](ctx, s, "/brands/")
}

// CarsByBrand lists the cars of one brand.
//
// Calls GET /brands/by_brand/?brand_id={id}.
func (s *RentalService) CarsByBrand(ctx context.Context, brandID int64) ([]models.Car, error) {
	path := "/brands/by_brand/?" + url.Values{"brand_id": {strconv.FormatInt(brandID, 10)}}.Encode()
	return listOf[models.Car](ctx, s, path)
}

// CheckAvailability asks whether car id is free between pickup and ret (YYYY-MM-DD).
//
// A rejected range still decodes into an [models.Availability] when the backend explains why.
//
// Calls POST /cars/{id}/check_availability/.
func (s *RentalService) CheckAvailability(ctx context.Context, id int64, pickup, ret string) (*models.Availability, error) {
	data, err := json.Marshal(models.BookingInterval{PickupDate: pickup, ReturnDate: ret})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.api.Post(ctx, fmt.Sprintf("/cars/%d/check_availability/", id), data)
	if err != nil {
		return nil, err
	}

	var availability models.Availability
	if resp.OK() || resp.StatusCode == http.StatusBadRequest {
		if err := json.Unmarshal(resp.Body, &availability); err == nil && (resp.OK() || availability.Error != "") {
			return &availability, nil
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d: %w", shared.ErrCarNotFound, id, newAPIError(resp))
	}
	if !resp.OK() {
		return nil, newAPIError(resp)
	}
	return nil, fmt.Errorf("failed to decode availability: %s", string(resp.Body))
}

// Wishlist lists the authenticated user's saved cars.
//
// Calls GET /wishlist/.
func (s *RentalService) Wishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	return listOf[models.WishlistEntry](ctx, s, "/wishlist/")
}

// AddToWishlist saves car id to the wishlist.
//
// Calls POST /wishlist/.
func (s *RentalService) AddToWishlist(ctx context.Context, carID int64) error {
	return s.doJSON(ctx, http.MethodPost, "/wishlist/", map[string]int64{"car_id": carID}, nil)
}

// RemoveFromWishlist removes the wishlist record holding car id.
//
// Calls DELETE /wishlist/remove_by_car/?car_id={id}.
func (s *RentalService) RemoveFromWishlist(ctx context.Context, carID int64) error {
	path := "/wishlist/remove_by_car/?" + url.Values{"car_id": {strconv.FormatInt(carID, 10)}}.Encode()
	return s.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Bookings lists the authenticated user's bookings, newest first.
//
// Calls GET /bookings/.
func (s *RentalService) Bookings(ctx context.Context) ([]models.Booking, error) {
	return listOf[models.Booking](ctx, s, "/bookings/")
}

// Booking fetches one of the user's bookings. A 404 wraps [shared.ErrBookingNotFound].
//
// Calls GET /bookings/{id}/.
func (s *RentalService) Booking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d/", id), nil, &booking); err != nil {
		if StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d: %w", shared.ErrBookingNotFound, id, err)
		}
		return nil, err
	}
	return &booking, nil
}

// CreateBooking reserves a car. The new booking starts out pending.
//
// Calls POST /bookings/.
func (s *RentalService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := s.doJSON(ctx, http.MethodPost, "/bookings/", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking marks booking id as cancelled and returns the updated booking.
//
// Calls PATCH /bookings/{id}/ with {"status": "cancelled"}.
func (s *RentalService) CancelBooking(ctx context.Context, id int64) (*models.Booking, error) {
	body := map[string]models.BookingStatus{"status": models.BookingCancelled}

	var booking models.Booking
	if err := s.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d/", id), body, &booking); err != nil {
		if StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d: %w", shared.ErrBookingNotFound, id, err)
		}
		return nil, err
	}
	return &booking, nil
}

// CarReviews lists the reviews left for car id.
//
// Calls GET /reviews/?car_id={id}.
func (s *RentalService) CarReviews(ctx context.Context, carID int64) ([]models.Review, error) {
	path := "/reviews/?" + url.Values{"car_id": {strconv.FormatInt(carID, 10)}}.Encode()
	return listOf[models.Review](ctx, s, path)
}

// UpdateProfile applies a partial update and returns the stored profile.
//
// Calls PATCH /users/profile/update/.
func (s *RentalService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	var out struct {
		Message string         `json:"message"`
		User    models.Profile `json:"user"`
	}
	if err := s.doJSON(ctx, http.MethodPatch, "/users/profile/update/", update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ChangePassword replaces the account password. The current token stays valid.
//
// Calls POST /users/profile/change-password/.
func (s *RentalService) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	return s.doJSON(ctx, http.MethodPost, "/users/profile/change-password/", change, nil)
}

// doJSON sends body encoded as JSON and decodes a 2xx response into result when it is non-nil.
func (s *RentalService) doJSON(ctx context.Context, method, path string, body, result any) error {
	var data []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		data = encoded
	}

	var (
		resp *APIResponse
		err  error
	)
	switch method {
	case http.MethodGet:
		resp, err = s.api.Get(ctx, path)
	case http.MethodPost:
		resp, err = s.api.Post(ctx, path, data)
	case http.MethodPatch:
		resp, err = s.api.Patch(ctx, path, data)
	case http.MethodDelete:
		resp, err = s.api.Delete(ctx, path)
	default:
		return fmt.Errorf("%w: method %s", shared.ErrNotImplemented, method)
	}
	if err != nil {
		return err
	}

	if !resp.OK() {
		return newAPIError(resp)
	}

	if result != nil {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func listOf[T any](ctx context.Context, s *RentalService, path string) ([]T, error) {
	resp, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, newAPIError(resp)
	}
	return decodeList[T](resp.Body)
}
