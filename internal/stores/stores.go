package stores

import (
	"context"
	"io"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/charmbracelet/log"
)

const (
	// ComparisonKey is the slot key holding the comparison set as a JSON array of cars.
	ComparisonKey = "comparison_list"
	// TokenKey is the slot key holding the access token.
	TokenKey = "access_token"

	// MaxComparison is the comparison set capacity.
	MaxComparison = 3
)

// Slot is a durable string key-value store.
//
// Get on a missing key returns an error wrapping [shared.ErrKeyNotFound].
type Slot interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// WishlistRemote is the server side of the wishlist.
type WishlistRemote interface {
	Wishlist(ctx context.Context) ([]models.WishlistEntry, error)
	AddToWishlist(ctx context.Context, carID int64) error
	RemoveFromWishlist(ctx context.Context, carID int64) error
}

// AuthRemote issues tokens, resolves them to profiles and edits the account.
type AuthRemote interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) error
	SetToken(token string)
}

// Remote is everything the stores need from the backend.
type Remote interface {
	AuthRemote
	WishlistRemote
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
