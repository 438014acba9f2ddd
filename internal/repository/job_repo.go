package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"spotbook/internal/parking"
)

type JobRepository interface {
	ExpiredGuestSpotIDs(ctx context.Context, today parking.Date) ([]int64, error)
	DeleteSpots(ctx context.Context, ids []int64) (int64, error)
}

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(conn *sqlx.DB) JobRepository {
	return &jobRepository{db: conn}
}

// ExpiredGuestSpotIDs finds guest spots whose designated date is before today.
func (r *jobRepository) ExpiredGuestSpotIDs(ctx context.Context, today parking.Date) ([]int64, error) {
	ids := []int64{}
	query := `SELECT id FROM spots WHERE type = 'guest' AND available_date < $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &ids, query, today); err != nil {
		return nil, fmt.Errorf("error querying expired guest spots: %w", err)
	}
	return ids, nil
}

// DeleteSpots removes the given spots. Their bookings go with them.
func (r *jobRepository) DeleteSpots(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM spots WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error deleting spots: %w", err)
	}
	return res.RowsAffected()
}
