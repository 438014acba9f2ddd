package parking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Status string

const (
	StatusBooked         Status = "booked"
	StatusAlreadyBooked  Status = "already-booked"
	StatusNoAvailability Status = "no-availability"
)

type QuickBookRequest struct {
	UserID       string
	UserEmail    string
	Dates        []string
	PreferScarce bool
}

type DateResult struct {
	Date     Date   `json:"date"`
	Status   Status `json:"status"`
	SpotID   int64  `json:"spotId,omitempty"`
	SpotCode string `json:"spotCode,omitempty"`
}

// Allocation is the outcome of one quick-booking batch. Bookings is exactly the
// set of rows to persist.
type Allocation struct {
	Results  []DateResult
	Bookings []Booking
}

func (a Allocation) BookedCount() int {
	return len(a.Bookings)
}

// Allocator assigns spots to a batch of dates. The zero value is usable.
type Allocator struct {
	Now   func() time.Time
	NewID func() string
}

func (a *Allocator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *Allocator) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.NewString()
}

// ParseDates validates every input date before anything is processed.
func ParseDates(raw []string) ([]Date, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	dates := make([]Date, 0, len(raw))
	for _, s := range raw {
		d, err := ParseDate(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// batchState is what earlier dates in the same call have already claimed.
type batchState struct {
	claimed     map[int64]struct{}
	bookedDates map[Date]struct{}
	usedScarce  map[Date]int
}

func newBatchState() *batchState {
	return &batchState{
		claimed:     make(map[int64]struct{}),
		bookedDates: make(map[Date]struct{}),
		usedScarce:  make(map[Date]int),
	}
}

func (b *batchState) claim(s Spot, d Date) {
	b.claimed[s.ID] = struct{}{}
	b.bookedDates[d] = struct{}{}
	if s.Category.Scarce() {
		b.usedScarce[WeekKey(d)]++
	}
}

func (b *batchState) isClaimed(id int64) bool {
	_, ok := b.claimed[id]
	return ok
}

// Allocate processes the requested dates strictly in order, so later dates see
// the spots and weekly quota consumed by earlier ones.
func (a *Allocator) Allocate(req QuickBookRequest, snap Snapshot) (Allocation, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return Allocation{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	dates, err := ParseDates(req.Dates)
	if err != nil {
		return Allocation{}, err
	}

	idx := NewIndex(snap)
	state := newBatchState()
	createdAt := a.now()

	out := Allocation{Results: make([]DateResult, 0, len(dates))}
	for _, d := range dates {
		if _, dup := state.bookedDates[d]; dup || idx.HasBooking(req.UserID, d) {
			out.Results = append(out.Results, DateResult{Date: d, Status: StatusAlreadyBooked})
			continue
		}

		spot, ok := a.pick(idx, state, req, d)
		if !ok {
			out.Results = append(out.Results, DateResult{Date: d, Status: StatusNoAvailability})
			continue
		}

		state.claim(spot, d)
		out.Bookings = append(out.Bookings, Booking{
			ID:        a.newID(),
			SpotID:    spot.ID,
			Date:      d,
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			CreatedAt: createdAt,
		})
		out.Results = append(out.Results, DateResult{
			Date:     d,
			Status:   StatusBooked,
			SpotID:   spot.ID,
			SpotCode: spot.Code,
		})
	}
	return out, nil
}

// pick orders the free spots for d and returns the first one the weekly cap
// allows. Spots already claimed on an earlier date of this batch are not
// candidates.
func (a *Allocator) pick(idx *Index, state *batchState, req QuickBookRequest, d Date) (Spot, bool) {
	free := idx.FreeSpots(d)
	candidates := free[:0]
	for _, s := range free {
		if !state.isClaimed(s.ID) {
			candidates = append(candidates, s)
		}
	}
	if req.PreferScarce {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Category.Scarce() && !candidates[j].Category.Scarce()
		})
	}

	week := WeekKey(d)
	capReached := idx.ScarceCountInWeek(req.UserID, week)+state.usedScarce[week] >= WeeklyScarceCap
	for _, s := range candidates {
		if s.Category.Scarce() && capReached {
			continue
		}
		return s, true
	}
	return Spot{}, false
}
