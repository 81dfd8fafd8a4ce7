package stores

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/charmbracelet/log"
)

// ComparisonStore is the set of cars picked for side-by-side comparison.
//
// It holds at most [MaxComparison] cars, unique by id, in insertion order.
// Every mutation writes the whole set to the slot before returning.
type ComparisonStore struct {
	mu      sync.RWMutex
	slot    Slot
	logger  *log.Logger
	entries []models.Car
}

// NewComparisonStore loads the persisted set from slot.
//
// A missing or unreadable value yields an empty store; construction never fails.
func NewComparisonStore(slot Slot, logger *log.Logger) *ComparisonStore {
	s := &ComparisonStore{slot: slot, logger: orDiscard(logger), entries: []models.Car{}}
	s.load()
	return s
}

func (s *ComparisonStore) load() {
	raw, err := s.slot.Get(ComparisonKey)
	if errors.Is(err, shared.ErrKeyNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("failed to read comparison list", "error", err)
		return
	}

	var cars []models.Car
	if err := json.Unmarshal([]byte(raw), &cars); err != nil {
		s.logger.Warn("ignoring stored comparison list", "error", fmt.Errorf("%w: %v", shared.ErrCorruptPersistence, err))
		return
	}

	for _, car := range cars {
		if len(s.entries) == MaxComparison {
			s.logger.Warn("stored comparison list over capacity, truncating", "stored", len(cars))
			break
		}
		if s.indexLocked(car.ID) >= 0 {
			continue
		}
		s.entries = append(s.entries, car)
	}
}

// Add appends car unless the set is full or already holds its id.
//
// Capacity is checked before duplicates.
func (s *ComparisonStore) Add(car models.Car) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= MaxComparison {
		return models.Fail(shared.ErrCapacityExceeded, fmt.Sprintf("You can only compare up to %d cars", MaxComparison))
	}
	if s.indexLocked(car.ID) >= 0 {
		return models.Fail(shared.ErrDuplicate, "Car already in comparison")
	}

	s.entries = append(s.entries, car)
	if err := s.persistLocked(); err != nil {
		return models.Fail(err, "Car added to comparison but could not be saved")
	}
	return models.Ok("Car added to comparison")
}

// Remove drops the car with id. Removing an absent id succeeds without change.
func (s *ComparisonStore) Remove(carID int64) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(carID); i >= 0 {
		s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	}

	if err := s.persistLocked(); err != nil {
		return models.Fail(err, "Car removed from comparison but could not be saved")
	}
	return models.Ok("Car removed from comparison")
}

// Clear empties the set.
func (s *ComparisonStore) Clear() models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []models.Car{}
	if err := s.persistLocked(); err != nil {
		return models.Fail(err, "Comparison cleared but could not be saved")
	}
	return models.Ok("Comparison cleared")
}

// Toggle removes car when present and adds it otherwise.
func (s *ComparisonStore) Toggle(car models.Car) models.Result {
	if s.Contains(car.ID) {
		return s.Remove(car.ID)
	}
	return s.Add(car)
}

// Contains reports whether carID is in the set.
func (s *ComparisonStore) Contains(carID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(carID) >= 0
}

// List returns a copy of the set in insertion order.
func (s *ComparisonStore) List() []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Car{}, s.entries...)
}

func (s *ComparisonStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *ComparisonStore) Max() int { return MaxComparison }

// CanCompare reports whether there are enough cars for a comparison view.
func (s *ComparisonStore) CanCompare() bool {
	return s.Len() >= 2
}

func (s *ComparisonStore) indexLocked(carID int64) int {
	for i, c := range s.entries {
		if c.ID == carID {
			return i
		}
	}
	return -1
}

func (s *ComparisonStore) persistLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("failed to encode comparison list", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}
	if err := s.slot.Set(ComparisonKey, string(data)); err != nil {
		s.logger.Error("failed to save comparison list", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrPersistence, err)
	}
	return nil
}
