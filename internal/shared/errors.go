package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")

	// ErrUnauthenticated is returned by store operations that need a session.
	ErrUnauthenticated = ErrNotAuthenticated

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrRemoteFailure      = fmt.Errorf("remote call failed")
	ErrCarNotFound        = fmt.Errorf("car not found")
	ErrBookingNotFound    = fmt.Errorf("booking not found")

	// Booking errors
	ErrCarUnavailable = fmt.Errorf("car not available")
	ErrNotCancellable = fmt.Errorf("booking cannot be cancelled")

	// Comparison and wishlist errors
	ErrCapacityExceeded = fmt.Errorf("capacity exceeded")
	ErrDuplicate        = fmt.Errorf("duplicate entry")
	ErrAlreadyPresent   = fmt.Errorf("already present")

	// Local storage errors
	ErrCorruptPersistence = fmt.Errorf("corrupt persisted value")
	ErrPersistence        = fmt.Errorf("failed to persist value")
	ErrKeyNotFound        = fmt.Errorf("key not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
