package parking

import (
	"time"
)

// Category is the closed set of spot kinds.
type Category string

const (
	CategoryOutside     Category = "outside"
	CategoryUnderground Category = "underground"
	CategorySpecial     Category = "special"
	CategoryGuest       Category = "guest"
)

// WeeklyScarceCap is the number of underground bookings a user may hold in one week.
const WeeklyScarceCap = 2

func (c Category) Valid() bool {
	switch c {
	case CategoryOutside, CategoryUnderground, CategorySpecial, CategoryGuest:
		return true
	}
	return false
}

// Scarce reports whether bookings of this category count against the weekly cap.
func (c Category) Scarce() bool {
	return c == CategoryUnderground
}

type Spot struct {
	ID            int64    `json:"id"`
	Code          string   `json:"code"`
	Location      string   `json:"location,omitempty"`
	Category      Category `json:"type"`
	AvailableDate *Date    `json:"availableDate,omitempty"`
}

// EligibleOn reports whether the spot may be allocated on d at all, regardless
// of existing bookings. Guest spots are eligible only on their designated date.
func (s Spot) EligibleOn(d Date) bool {
	if s.Category != CategoryGuest {
		return true
	}
	return s.AvailableDate != nil && *s.AvailableDate == d
}

type Booking struct {
	ID        string    `json:"id,omitempty"`
	SpotID    int64     `json:"spotId"`
	Date      Date      `json:"date"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot is the inventory as read at the start of one request. Spots are in
// the inventory's natural order.
type Snapshot struct {
	Spots    []Spot
	Bookings []Booking
}
