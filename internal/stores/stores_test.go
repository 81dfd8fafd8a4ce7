package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/services"
	"github.com/shopspring/decimal"
)

var _ Remote = (*services.RentalService)(nil)

func car(id int64) models.Car {
	return models.Car{
		ID:          id,
		Name:        fmt.Sprintf("Car %d", id),
		PricePerDay: decimal.NewFromInt(40 + id),
	}
}

// stubRemote records calls and serves canned responses.
type stubRemote struct {
	mu      sync.Mutex
	calls   []string
	entries []models.WishlistEntry
	nextID  int64
	token   string

	listErr   error
	addErr    error
	removeErr error

	loginToken  string
	loginErr    error
	registerErr error
	profile     *models.Profile
	profileErr  error
	updateErr   error
	passwordErr error
	password    models.PasswordChange

	// when set, Wishlist blocks until it is closed or ctx ends
	block chan struct{}
}

func (s *stubRemote) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubRemote) count(call string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (s *stubRemote) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubRemote) Wishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	s.record("list")

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.WishlistEntry{}, s.entries...), nil
}

func (s *stubRemote) AddToWishlist(ctx context.Context, carID int64) error {
	s.record("add")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	s.nextID++
	s.entries = append(s.entries, models.WishlistEntry{ID: 100 + s.nextID, Car: car(carID)})
	return nil
}

func (s *stubRemote) RemoveFromWishlist(ctx context.Context, carID int64) error {
	s.record("remove")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	for i, e := range s.entries {
		if e.Car.ID == carID {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubRemote) Login(ctx context.Context, creds models.Credentials) (string, error) {
	s.record("login")
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.loginToken, nil
}

func (s *stubRemote) Register(ctx context.Context, req models.RegisterRequest) error {
	s.record("register")
	return s.registerErr
}

func (s *stubRemote) Profile(ctx context.Context) (*models.Profile, error) {
	s.record("profile")
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *stubRemote) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	s.record("update_profile")
	if s.updateErr != nil {
		return nil, s.updateErr
	}

	updated := *s.profile
	if update.Email != "" {
		updated.Email = update.Email
	}
	if update.FirstName != "" {
		updated.FirstName = update.FirstName
	}
	if update.LastName != "" {
		updated.LastName = update.LastName
	}
	return &updated, nil
}

func (s *stubRemote) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	s.record("change_password")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = change
	return s.passwordErr
}

func (s *stubRemote) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *stubRemote) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
