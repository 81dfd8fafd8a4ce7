// Package repositories implements SQLite persistence for client-side state.
//
// Key Implementations:
//   - [KVRepository] : durable key-value slots (comparison list, session token)
//   - [CarRepository] : last fetched car snapshots for offline browsing
//
// Both take an open *sql.DB with migrations applied (see shared.OpenDatabase).
package repositories
