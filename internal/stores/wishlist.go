package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/services"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/charmbracelet/log"
)

// WishlistState is the lifecycle stage of a [WishlistStore].
type WishlistState int

const (
	Unauthenticated WishlistState = iota
	Loading
	Ready
)

func (s WishlistState) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("WishlistState(%d)", int(s))
	}
}

// WishlistStore mirrors the user's server-side wishlist.
//
// Mutations go to the remote and are followed by a full refetch; the local list is never patched.
// The mutex only guards fields and is never held across a remote call, so overlapping
// mutations may interleave.
type WishlistStore struct {
	mu      sync.RWMutex
	remote  WishlistRemote
	logger  *log.Logger
	state   WishlistState
	entries []models.WishlistEntry
	// bumped on Start and Reset so a fetch from an ended session is dropped
	generation uint64
}

// NewWishlistStore creates an unauthenticated, empty store.
func NewWishlistStore(remote WishlistRemote, logger *log.Logger) *WishlistStore {
	return &WishlistStore{remote: remote, logger: orDiscard(logger), entries: []models.WishlistEntry{}}
}

// Start begins a session: the store moves to Loading and fetches.
func (w *WishlistStore) Start(ctx context.Context) error {
	w.mu.Lock()
	w.state = Loading
	w.generation++
	w.mu.Unlock()

	return w.Fetch(ctx)
}

// Reset ends the session, clearing the list.
func (w *WishlistStore) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = Unauthenticated
	w.entries = []models.WishlistEntry{}
	w.generation++
}

// Fetch replaces the local list with the server's.
//
// On failure the list becomes empty, the store is Ready, and the error is logged and returned.
// Without a session nothing is fetched.
func (w *WishlistStore) Fetch(ctx context.Context) error {
	w.mu.RLock()
	state, gen := w.state, w.generation
	w.mu.RUnlock()

	if state == Unauthenticated {
		return nil
	}

	entries, err := w.remote.Wishlist(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		w.logger.Debug("dropping wishlist fetched for an ended session")
		return nil
	}

	w.state = Ready
	if err != nil {
		w.logger.Warn("failed to fetch wishlist", "error", err)
		w.entries = []models.WishlistEntry{}
		return fmt.Errorf("%w: %v", shared.ErrRemoteFailure, err)
	}
	if entries == nil {
		entries = []models.WishlistEntry{}
	}
	w.entries = entries
	return nil
}

// Add saves car to the wishlist and refetches.
func (w *WishlistStore) Add(ctx context.Context, car models.Car) models.Result {
	if w.State() == Unauthenticated {
		return models.Fail(shared.ErrUnauthenticated, "Please login to add to wishlist")
	}
	if w.Contains(car.ID) {
		return models.Fail(shared.ErrAlreadyPresent, "Already in wishlist")
	}

	if err := w.remote.AddToWishlist(ctx, car.ID); err != nil {
		w.logger.Warn("failed to add to wishlist", "car", car.ID, "error", err)

		msg := services.ErrorMessage(err)
		if msg == "" {
			msg = "Failed to add to wishlist"
		}
		return models.Fail(fmt.Errorf("%w: %v", shared.ErrRemoteFailure, err), msg)
	}

	// Fetch logs its own failure and the add already succeeded.
	_ = w.Fetch(ctx)
	return models.Ok("Added to wishlist")
}

// Remove deletes car id from the wishlist and refetches.
func (w *WishlistStore) Remove(ctx context.Context, carID int64) models.Result {
	if w.State() == Unauthenticated {
		return models.Fail(shared.ErrUnauthenticated, "Please login to manage your wishlist")
	}

	if err := w.remote.RemoveFromWishlist(ctx, carID); err != nil {
		w.logger.Warn("failed to remove from wishlist", "car", carID, "error", err)
		return models.Fail(fmt.Errorf("%w: %v", shared.ErrRemoteFailure, err), "Failed to remove from wishlist")
	}

	// Fetch logs its own failure and the removal already succeeded.
	_ = w.Fetch(ctx)
	return models.Ok("Removed from wishlist")
}

// Toggle removes car when it is saved and adds it otherwise.
func (w *WishlistStore) Toggle(ctx context.Context, car models.Car) models.Result {
	if w.Contains(car.ID) {
		return w.Remove(ctx, car.ID)
	}
	return w.Add(ctx, car)
}

// Contains reports whether the cached list holds carID. Record ids are not considered.
func (w *WishlistStore) Contains(carID int64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, e := range w.entries {
		if e.Car.ID == carID {
			return true
		}
	}
	return false
}

// List returns a copy of the cached list.
func (w *WishlistStore) List() []models.WishlistEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]models.WishlistEntry{}, w.entries...)
}

func (w *WishlistStore) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

func (w *WishlistStore) State() WishlistState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}
