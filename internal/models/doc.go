// Package models defines the data shapes exchanged with the car-rental API and held by the client stores.
//
//   - [Car] : public car snapshot, used both as a comparison entry and embedded in wishlist records
//   - [WishlistEntry] : server-side wishlist record (record id + embedded [Car])
//   - [Profile] : the authenticated user's profile
//   - [Result] : success/failure outcome with a human-readable message returned by every store mutation
//
// Decimal fields (price per day, top speed, 0-60 time) use [decimal.Decimal] because the backend
// serializes them as strings.
package models
