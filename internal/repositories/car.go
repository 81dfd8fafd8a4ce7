package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
)

// CarRepository caches car snapshots fetched from the API, keyed by remote car id.
//
// The full snapshot is stored as JSON so the cache always matches the API shape.
type CarRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCarRepository creates a new [CarRepository] with the given database connection
func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{db: db, now: time.Now}
}

// Save inserts or refreshes the snapshot of car.
func (r *CarRepository) Save(car models.Car) error {
	return r.SaveAll([]models.Car{car})
}

// SaveAll inserts or refreshes every snapshot in a single transaction.
func (r *CarRepository) SaveAll(cars []models.Car) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO car_cache (car_id, name, payload, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(car_id) DO UPDATE SET name = excluded.name, payload = excluded.payload, fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := r.now()
	for _, car := range cars {
		payload, err := json.Marshal(car)
		if err != nil {
			return fmt.Errorf("failed to encode car %d: %w", car.ID, err)
		}
		if _, err := stmt.Exec(car.ID, car.Name, string(payload), now); err != nil {
			return fmt.Errorf("failed to cache car %d: %w", car.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit car cache: %w", err)
	}
	return nil
}

// Get returns the cached snapshot for id, or an error wrapping [shared.ErrCarNotFound].
func (r *CarRepository) Get(id int64) (*models.Car, error) {
	var payload string
	err := r.db.QueryRow("SELECT payload FROM car_cache WHERE car_id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrCarNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query car: %w", err)
	}

	var car models.Car
	if err := json.Unmarshal([]byte(payload), &car); err != nil {
		return nil, fmt.Errorf("%w: car %d: %v", shared.ErrCorruptPersistence, id, err)
	}
	return &car, nil
}

// List returns cached cars ordered by name, optionally filtered by a case-insensitive name substring.
//
// Rows whose payload no longer decodes are skipped.
func (r *CarRepository) List(nameFilter string) ([]models.Car, error) {
	query := "SELECT payload FROM car_cache"
	args := []any{}

	if nameFilter != "" {
		query += " WHERE name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+nameFilter+"%")
	}
	query += " ORDER BY name ASC, car_id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	cars := []models.Car{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}

		var car models.Car
		if err := json.Unmarshal([]byte(payload), &car); err != nil {
			continue
		}
		cars = append(cars, car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cars, nil
}

// Count returns the number of cached cars.
func (r *CarRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM car_cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return count, nil
}

// Purge deletes snapshots fetched before cutoff and returns how many were removed.
func (r *CarRepository) Purge(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM car_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cars: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}
