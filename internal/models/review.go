package models

import "time"

// Review is a user's rating of a car, 1 to 5 stars.
type Review struct {
	ID        int64     `json:"id"`
	User      int64     `json:"user"`
	Username  string    `json:"user_username"`
	Car       int64     `json:"car"`
	CarName   string    `json:"car_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
