package parking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrSpotNotFound = errors.New("spot not found")

// Reason names why a single booking was rejected. The empty Reason means accepted.
type Reason string

const (
	ReasonWeekend         Reason = "weekend-not-allowed"
	ReasonDuplicateDay    Reason = "duplicate-day"
	ReasonWeeklyCap       Reason = "weekly-cap-exceeded"
	ReasonSpotUnavailable Reason = "spot-unavailable"
	ReasonSpotTaken       Reason = "spot-taken"
)

type SingleBookingRequest struct {
	UserID    string
	UserEmail string
	SpotID    int64
	SpotCode  string
	Date      string
}

type Decision struct {
	Spot    Spot
	Date    Date
	Reason  Reason
	Booking *Booking
}

func (d Decision) Accepted() bool {
	return d.Reason == ""
}

// ValidateSingle applies the booking rules to one pinned (spot, date) pair.
// Rules run in a fixed order and the first failure wins. An accepted decision
// carries the booking row to commit.
func ValidateSingle(req SingleBookingRequest, snap Snapshot, now time.Time) (Decision, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return Decision{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	d, err := ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// weekends are refused whatever the spot
	if d.IsWeekend() {
		return Decision{Spot: Spot{ID: req.SpotID, Code: req.SpotCode}, Date: d, Reason: ReasonWeekend}, nil
	}

	idx := NewIndex(snap)
	spot, ok := lookupSpot(idx, req)
	if !ok {
		return Decision{}, ErrSpotNotFound
	}

	dec := Decision{Spot: spot, Date: d}
	switch {
	case idx.HasBooking(req.UserID, d):
		dec.Reason = ReasonDuplicateDay
	case spot.Category.Scarce() && idx.ScarceCountInWeek(req.UserID, WeekKey(d)) >= WeeklyScarceCap:
		dec.Reason = ReasonWeeklyCap
	case !spot.EligibleOn(d):
		dec.Reason = ReasonSpotUnavailable
	case idx.IsBooked(spot.ID, d):
		dec.Reason = ReasonSpotTaken
	default:
		dec.Booking = &Booking{
			SpotID:    spot.ID,
			Date:      d,
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			CreatedAt: now,
		}
	}
	return dec, nil
}

func lookupSpot(idx *Index, req SingleBookingRequest) (Spot, bool) {
	if req.SpotID != 0 {
		return idx.Spot(req.SpotID)
	}
	if req.SpotCode != "" {
		return idx.SpotByCode(req.SpotCode)
	}
	return Spot{}, false
}
