package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrBookingConflict means a unique constraint on bookings rejected the
	// batch. Nothing from the batch was stored.
	ErrBookingConflict = errors.New("booking conflicts with an existing booking")
	ErrDuplicateCode   = errors.New("spot code already exists")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
