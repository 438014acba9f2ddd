package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"spotbook/internal/db"
	"spotbook/internal/parking"
)

type BookingRepository interface {
	// LoadSnapshot reads the full spot inventory and every booking dated
	// within [from, to] from one consistent view.
	LoadSnapshot(ctx context.Context, from, to parking.Date) (parking.Snapshot, error)
	// InsertBookings stores all rows or none.
	InsertBookings(ctx context.Context, bookings []parking.Booking) error
	// Cancel deletes the booking on (spotID, date). A non-empty userID
	// restricts the delete to that user's booking.
	Cancel(ctx context.Context, spotID int64, date parking.Date, userID string) error
	ListByUser(ctx context.Context, userID string) ([]db.BookingView, error)
	ListAll(ctx context.Context, date *parking.Date) ([]db.BookingView, error)
}

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(conn *sqlx.DB) BookingRepository {
	return &bookingRepository{db: conn}
}

const (
	selectSpots = `SELECT id, code, location, type, available_date, created_at FROM spots ORDER BY id`

	selectBookingsBetween = `
		SELECT id, spot_id, booking_date, user_id, user_email, created_at
		FROM bookings
		WHERE booking_date BETWEEN $1 AND $2
		ORDER BY booking_date, spot_id`

	selectBookingViews = `
		SELECT b.id, b.spot_id, b.booking_date, b.user_id, b.user_email, b.created_at,
		       s.code AS spot_code, s.type AS spot_type
		FROM bookings b
		LEFT JOIN spots s ON s.id = b.spot_id`
)

func (r *bookingRepository) LoadSnapshot(ctx context.Context, from, to parking.Date) (parking.Snapshot, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return parking.Snapshot{}, fmt.Errorf("error starting snapshot read: %w", err)
	}
	defer tx.Rollback()

	var spots []db.Spot
	if err := tx.SelectContext(ctx, &spots, selectSpots); err != nil {
		return parking.Snapshot{}, fmt.Errorf("error querying spots: %w", err)
	}
	var bookings []db.Booking
	if err := tx.SelectContext(ctx, &bookings, selectBookingsBetween, from, to); err != nil {
		return parking.Snapshot{}, fmt.Errorf("error querying bookings: %w", err)
	}

	snap := parking.Snapshot{
		Spots:    make([]parking.Spot, 0, len(spots)),
		Bookings: make([]parking.Booking, 0, len(bookings)),
	}
	for _, s := range spots {
		snap.Spots = append(snap.Spots, s.ToParking())
	}
	for _, b := range bookings {
		snap.Bookings = append(snap.Bookings, b.ToParking())
	}
	return snap, tx.Commit()
}

func (r *bookingRepository) InsertBookings(ctx context.Context, bookings []parking.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting booking commit: %w", err)
	}
	defer tx.Rollback()

	const insert = `
		INSERT INTO bookings (id, spot_id, booking_date, user_id, user_email, created_at)
		VALUES (:id, :spot_id, :booking_date, :user_id, :user_email, :created_at)`
	for _, b := range bookings {
		row := db.Booking{
			ID:          b.ID,
			SpotID:      b.SpotID,
			BookingDate: b.Date,
			UserID:      b.UserID,
			UserEmail:   b.UserEmail,
			CreatedAt:   b.CreatedAt,
		}
		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			if isUniqueViolation(err) {
				return ErrBookingConflict
			}
			return fmt.Errorf("error inserting booking for spot %d on %s: %w", b.SpotID, b.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrBookingConflict
		}
		return fmt.Errorf("error committing bookings: %w", err)
	}
	return nil
}

func (r *bookingRepository) Cancel(ctx context.Context, spotID int64, date parking.Date, userID string) error {
	query := `DELETE FROM bookings WHERE spot_id = $1 AND booking_date = $2`
	args := []any{spotID, date}
	if userID != "" {
		query += ` AND user_id = $3`
		args = append(args, userID)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error cancelling booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading cancelled rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]db.BookingView, error) {
	views := []db.BookingView{}
	query := selectBookingViews + ` WHERE b.user_id = $1 ORDER BY b.booking_date`
	if err := r.db.SelectContext(ctx, &views, query, userID); err != nil {
		return nil, fmt.Errorf("error querying bookings for user: %w", err)
	}
	return views, nil
}

func (r *bookingRepository) ListAll(ctx context.Context, date *parking.Date) ([]db.BookingView, error) {
	views := []db.BookingView{}
	query := selectBookingViews
	var args []any
	if date != nil {
		query += ` WHERE b.booking_date = $1`
		args = append(args, *date)
	}
	query += ` ORDER BY b.booking_date, s.code`

	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	return views, nil
}
