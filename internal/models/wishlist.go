package models

import "time"

// WishlistEntry is one saved car in the user's server-side wishlist.
//
// ID identifies the wishlist record, not the car. Membership checks use Car.ID.
type WishlistEntry struct {
	ID        int64     `json:"id"`
	User      int64     `json:"user,omitempty"`
	Car       Car       `json:"car"`
	CreatedAt time.Time `json:"created_at"`
}
