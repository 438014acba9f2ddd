package entities

import (
	"time"

	"spotbook/internal/parking"
)

// BookingView is a booking as listed to users and admins, with the spot it holds.
type BookingView struct {
	ID        string       `json:"id"`
	SpotID    int64        `json:"spotId"`
	SpotCode  string       `json:"spotCode"`
	SpotType  string       `json:"spotType"`
	Date      parking.Date `json:"date"`
	UserID    string       `json:"userId"`
	UserEmail string       `json:"userEmail"`
	CreatedAt time.Time    `json:"createdAt"`
}

type BookingsList struct {
	Total    int           `json:"total"`
	Bookings []BookingView `json:"bookings"`
}

type QuickBookResponse struct {
	Results     []parking.DateResult `json:"results"`
	BookedCount int                  `json:"bookedCount"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
