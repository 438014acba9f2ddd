package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"spotbook/internal/db"
	"spotbook/internal/parking"
	"spotbook/internal/repository"
)

var testNow = time.Date(2024, 6, 7, 8, 30, 0, 0, time.UTC)

func mustDate(s string) parking.Date {
	d, err := parking.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type window struct{ from, to parking.Date }

type fakeBookingRepo struct {
	spots    []parking.Spot
	bookings []parking.Booking

	loadErr   error
	insertErr error

	windows  []window
	inserted [][]parking.Booking
	cancels  []string
}

func (f *fakeBookingRepo) LoadSnapshot(_ context.Context, from, to parking.Date) (parking.Snapshot, error) {
	f.windows = append(f.windows, window{from, to})
	if f.loadErr != nil {
		return parking.Snapshot{}, f.loadErr
	}
	var in []parking.Booking
	for _, b := range f.bookings {
		if !b.Date.Before(from) && !to.Before(b.Date) {
			in = append(in, b)
		}
	}
	return parking.Snapshot{Spots: f.spots, Bookings: in}, nil
}

func (f *fakeBookingRepo) InsertBookings(_ context.Context, bookings []parking.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, nb := range bookings {
		for _, b := range f.bookings {
			if (b.SpotID == nb.SpotID || b.UserID == nb.UserID) && b.Date == nb.Date {
				return repository.ErrBookingConflict
			}
		}
	}
	f.inserted = append(f.inserted, bookings)
	f.bookings = append(f.bookings, bookings...)
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, spotID int64, date parking.Date, userID string) error {
	f.cancels = append(f.cancels, fmt.Sprintf("%d/%s/%s", spotID, date, userID))
	for i, b := range f.bookings {
		if b.SpotID == spotID && b.Date == date && (userID == "" || b.UserID == userID) {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeBookingRepo) views(match func(parking.Booking) bool) []db.BookingView {
	codes := make(map[int64]parking.Spot)
	for _, s := range f.spots {
		codes[s.ID] = s
	}
	out := []db.BookingView{}
	for _, b := range f.bookings {
		if !match(b) {
			continue
		}
		v := db.BookingView{Booking: db.Booking{
			ID: b.ID, SpotID: b.SpotID, BookingDate: b.Date, UserID: b.UserID, UserEmail: b.UserEmail, CreatedAt: b.CreatedAt,
		}}
		if s, ok := codes[b.SpotID]; ok {
			v.SpotCode.String, v.SpotCode.Valid = s.Code, true
			v.SpotType.String, v.SpotType.Valid = string(s.Category), true
		}
		out = append(out, v)
	}
	return out
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]db.BookingView, error) {
	return f.views(func(b parking.Booking) bool { return b.UserID == userID }), nil
}

func (f *fakeBookingRepo) ListAll(_ context.Context, date *parking.Date) ([]db.BookingView, error) {
	return f.views(func(b parking.Booking) bool { return date == nil || b.Date == *date }), nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	summaries []string
	guests    []string
	err       error
}

func (f *fakeNotifier) BookingSummary(email string, results []parking.DateResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries = append(f.summaries, fmt.Sprintf("%s:%d", email, len(results)))
	return f.err
}

func (f *fakeNotifier) GuestSpotBooked(spot parking.Spot, b parking.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guests = append(f.guests, spot.Code+"@"+b.Date.String())
	return f.err
}

func newTestBookingService(repo *fakeBookingRepo, n Notifier) *BookingService {
	s := NewBookingService(repo, n, zap.NewNop())
	s.now = func() time.Time { return testNow }
	id := 0
	s.newID = func() string {
		id++
		return fmt.Sprintf("bk-%d", id)
	}
	return s
}

type fakeSpotRepo struct {
	spots  []parking.Spot
	nextID int64
}

func (f *fakeSpotRepo) List(context.Context) ([]parking.Spot, error) { return f.spots, nil }

func (f *fakeSpotRepo) Create(_ context.Context, s parking.Spot) (parking.Spot, error) {
	for _, e := range f.spots {
		if e.Code == s.Code {
			return parking.Spot{}, repository.ErrDuplicateCode
		}
	}
	f.nextID++
	s.ID = f.nextID
	f.spots = append(f.spots, s)
	return s, nil
}

func (f *fakeSpotRepo) Delete(_ context.Context, id int64) error {
	for i, s := range f.spots {
		if s.ID == id {
			f.spots = append(f.spots[:i], f.spots[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeUserRepo struct {
	users map[string]db.User
}

func (f *fakeUserRepo) Upsert(_ context.Context, id, email string) (db.User, error) {
	if f.users == nil {
		f.users = make(map[string]db.User)
	}
	u, ok := f.users[id]
	if !ok {
		u = db.User{ID: id, CreatedAt: testNow}
	}
	if email != "" {
		u.Email = email
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeUserRepo) List(context.Context) ([]db.User, error) {
	out := []db.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}
