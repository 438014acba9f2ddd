package db

import (
	"database/sql"
	"time"

	"spotbook/internal/parking"
)

type Spot struct {
	ID            int64         `db:"id"`
	Code          string        `db:"code"`
	Location      string        `db:"location"`
	Type          string        `db:"type"`
	AvailableDate *parking.Date `db:"available_date"`
	CreatedAt     time.Time     `db:"created_at"`
}

func (s Spot) ToParking() parking.Spot {
	return parking.Spot{
		ID:            s.ID,
		Code:          s.Code,
		Location:      s.Location,
		Category:      parking.Category(s.Type),
		AvailableDate: s.AvailableDate,
	}
}

type Booking struct {
	ID          string       `db:"id"`
	SpotID      int64        `db:"spot_id"`
	BookingDate parking.Date `db:"booking_date"`
	UserID      string       `db:"user_id"`
	UserEmail   string       `db:"user_email"`
	CreatedAt   time.Time    `db:"created_at"`
}

func (b Booking) ToParking() parking.Booking {
	return parking.Booking{
		ID:        b.ID,
		SpotID:    b.SpotID,
		Date:      b.BookingDate,
		UserID:    b.UserID,
		UserEmail: b.UserEmail,
		CreatedAt: b.CreatedAt,
	}
}

// BookingView is a booking joined with the spot it holds. Spot columns are
// nullable because a spot can be deleted between reads.
type BookingView struct {
	Booking
	SpotCode sql.NullString `db:"spot_code"`
	SpotType sql.NullString `db:"spot_type"`
}

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

type Admin struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}
