package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spotbook/internal/db"
	"spotbook/internal/entities"
	"spotbook/internal/parking"
	"spotbook/internal/repository"
)

type BookingService struct {
	repo      repository.BookingRepository
	notifier  Notifier
	allocator *parking.Allocator
	log       *zap.Logger

	now   func() time.Time
	newID func() string

	pending sync.WaitGroup
}

func NewBookingService(repo repository.BookingRepository, notifier Notifier, log *zap.Logger) *BookingService {
	s := &BookingService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	s.allocator = &parking.Allocator{
		Now:   func() time.Time { return s.now() },
		NewID: func() string { return s.newID() },
	}
	return s
}

// QuickBook books one spot per requested date for the caller. Dates that
// cannot be booked come back with their status; the call only fails for bad
// input or when the commit itself fails.
func (s *BookingService) QuickBook(ctx context.Context, userID, email string, req entities.QuickBookRequest) (entities.QuickBookResponse, error) {
	dates, err := parking.ParseDates(req.Dates)
	if err != nil {
		return entities.QuickBookResponse{}, err
	}

	from, to := parking.SnapshotWindow(dates)
	snap, err := s.repo.LoadSnapshot(ctx, from, to)
	if err != nil {
		return entities.QuickBookResponse{}, fmt.Errorf("failed to load inventory: %w", err)
	}

	alloc, err := s.allocator.Allocate(parking.QuickBookRequest{
		UserID:       userID,
		UserEmail:    email,
		Dates:        req.Dates,
		PreferScarce: req.WantsScarce(),
	}, snap)
	if err != nil {
		return entities.QuickBookResponse{}, err
	}

	if err := s.commit(ctx, alloc.Bookings); err != nil {
		return entities.QuickBookResponse{}, err
	}
	s.log.Info("quick booking committed",
		zap.String("user_id", userID),
		zap.Int("requested", len(dates)),
		zap.Int("booked", alloc.BookedCount()),
	)

	if alloc.BookedCount() > 0 {
		s.notifyBooked(email, alloc.Results, alloc.Bookings, snap.Spots)
	}
	return entities.QuickBookResponse{Results: alloc.Results, BookedCount: alloc.BookedCount()}, nil
}

// BookSpot books a specific spot for one date. A rejected request is not an
// error: the returned decision carries the reason.
func (s *BookingService) BookSpot(ctx context.Context, userID, email string, req entities.BookSpotRequest) (parking.Decision, error) {
	d, err := parking.ParseDate(req.Date)
	if err != nil {
		return parking.Decision{}, fmt.Errorf("%w: %v", parking.ErrInvalidInput, err)
	}

	from, to := parking.SnapshotWindow([]parking.Date{d})
	snap, err := s.repo.LoadSnapshot(ctx, from, to)
	if err != nil {
		return parking.Decision{}, fmt.Errorf("failed to load inventory: %w", err)
	}

	dec, err := parking.ValidateSingle(parking.SingleBookingRequest{
		UserID:    userID,
		UserEmail: email,
		SpotID:    req.SpotID,
		SpotCode:  req.SpotCode,
		Date:      req.Date,
	}, snap, s.now())
	if err != nil || !dec.Accepted() {
		return dec, err
	}

	dec.Booking.ID = s.newID()
	if err := s.commit(ctx, []parking.Booking{*dec.Booking}); err != nil {
		return parking.Decision{}, err
	}
	s.log.Info("booking committed",
		zap.String("user_id", userID),
		zap.String("spot", dec.Spot.Code),
		zap.Stringer("date", dec.Date),
	)

	result := parking.DateResult{Date: d, Status: parking.StatusBooked, SpotID: dec.Spot.ID, SpotCode: dec.Spot.Code}
	s.notifyBooked(email, []parking.DateResult{result}, []parking.Booking{*dec.Booking}, snap.Spots)
	return dec, nil
}

func (s *BookingService) commit(ctx context.Context, bookings []parking.Booking) error {
	err := s.repo.InsertBookings(ctx, bookings)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrBookingConflict) {
		s.log.Warn("booking batch lost a race, nothing stored", zap.Int("rows", len(bookings)))
		return err
	}
	return fmt.Errorf("failed to store bookings: %w", err)
}

// notifyBooked sends the summary email and any front desk messages in the
// background. Failures are logged and never reach the caller.
func (s *BookingService) notifyBooked(email string, results []parking.DateResult, bookings []parking.Booking, spots []parking.Spot) {
	if s.notifier == nil {
		return
	}
	byID := make(map[int64]parking.Spot, len(spots))
	for _, sp := range spots {
		byID[sp.ID] = sp
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.notifier.BookingSummary(email, results); err != nil {
			s.log.Warn("booking summary email failed", zap.String("to", email), zap.Error(err))
		}
		for _, b := range bookings {
			sp, ok := byID[b.SpotID]
			if !ok || sp.Category != parking.CategoryGuest {
				continue
			}
			if err := s.notifier.GuestSpotBooked(sp, b); err != nil {
				s.log.Warn("front desk sms failed", zap.String("spot", sp.Code), zap.Error(err))
			}
		}
	}()
}

// Wait blocks until background notifications have finished.
func (s *BookingService) Wait() {
	s.pending.Wait()
}

// Cancel removes the booking on (spotId, date). A non-empty userID only
// cancels that user's own booking.
func (s *BookingService) Cancel(ctx context.Context, userID string, req entities.CancelBookingRequest) error {
	d, err := parking.ParseDate(req.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", parking.ErrInvalidInput, err)
	}
	if err := s.repo.Cancel(ctx, req.SpotID, d, userID); err != nil {
		return err
	}
	s.log.Info("booking cancelled", zap.Int64("spot_id", req.SpotID), zap.Stringer("date", d), zap.String("by", userID))
	return nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID string) (entities.BookingsList, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return entities.BookingsList{}, err
	}
	return toBookingsList(rows), nil
}

// ListBookings lists every booking, or only those on date when it is set.
func (s *BookingService) ListBookings(ctx context.Context, date string) (entities.BookingsList, error) {
	var filter *parking.Date
	if date != "" {
		d, err := parking.ParseDate(date)
		if err != nil {
			return entities.BookingsList{}, fmt.Errorf("%w: %v", parking.ErrInvalidInput, err)
		}
		filter = &d
	}
	rows, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return entities.BookingsList{}, err
	}
	return toBookingsList(rows), nil
}

func (s *BookingService) loadDay(ctx context.Context, date string) (parking.Date, parking.Snapshot, error) {
	d, err := parking.ParseDate(date)
	if err != nil {
		return parking.Date{}, parking.Snapshot{}, fmt.Errorf("%w: %v", parking.ErrInvalidInput, err)
	}
	snap, err := s.repo.LoadSnapshot(ctx, d, d)
	if err != nil {
		return parking.Date{}, parking.Snapshot{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	return d, snap, nil
}

func (s *BookingService) AvailableSpots(ctx context.Context, date string) (entities.AvailabilityResponse, error) {
	d, snap, err := s.loadDay(ctx, date)
	if err != nil {
		return entities.AvailabilityResponse{}, err
	}
	free := parking.NewIndex(snap).FreeSpots(d)
	return entities.AvailabilityResponse{Date: d, Count: len(free), Spots: free}, nil
}

func (s *BookingService) SpotStatuses(ctx context.Context, date, userID string) (entities.SpotStatusResponse, error) {
	d, snap, err := s.loadDay(ctx, date)
	if err != nil {
		return entities.SpotStatusResponse{}, err
	}
	return entities.SpotStatusResponse{
		Date:  d,
		Spots: parking.AnnotateSpots(snap.Spots, snap.Bookings, d, userID),
	}, nil
}

func toBookingsList(rows []db.BookingView) entities.BookingsList {
	out := entities.BookingsList{Total: len(rows), Bookings: make([]entities.BookingView, 0, len(rows))}
	for _, r := range rows {
		out.Bookings = append(out.Bookings, entities.BookingView{
			ID:        r.ID,
			SpotID:    r.SpotID,
			SpotCode:  r.SpotCode.String,
			SpotType:  r.SpotType.String,
			Date:      r.BookingDate,
			UserID:    r.UserID,
			UserEmail: r.UserEmail,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
