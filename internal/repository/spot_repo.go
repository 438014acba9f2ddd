package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"spotbook/internal/db"
	"spotbook/internal/parking"
)

type SpotRepository interface {
	List(ctx context.Context) ([]parking.Spot, error)
	Create(ctx context.Context, spot parking.Spot) (parking.Spot, error)
	// Delete removes the spot and, through the foreign key, its bookings.
	Delete(ctx context.Context, id int64) error
}

type spotRepository struct {
	db *sqlx.DB
}

func NewSpotRepository(conn *sqlx.DB) SpotRepository {
	return &spotRepository{db: conn}
}

func (r *spotRepository) List(ctx context.Context) ([]parking.Spot, error) {
	var rows []db.Spot
	if err := r.db.SelectContext(ctx, &rows, selectSpots); err != nil {
		return nil, fmt.Errorf("error querying spots: %w", err)
	}
	spots := make([]parking.Spot, 0, len(rows))
	for _, s := range rows {
		spots = append(spots, s.ToParking())
	}
	return spots, nil
}

func (r *spotRepository) Create(ctx context.Context, spot parking.Spot) (parking.Spot, error) {
	query := `
		INSERT INTO spots (code, location, type, available_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, location, type, available_date, created_at`

	var row db.Spot
	err := r.db.GetContext(ctx, &row, query, spot.Code, spot.Location, string(spot.Category), spot.AvailableDate)
	if err != nil {
		if isUniqueViolation(err) {
			return parking.Spot{}, ErrDuplicateCode
		}
		return parking.Spot{}, fmt.Errorf("error inserting spot %s: %w", spot.Code, err)
	}
	return row.ToParking(), nil
}

func (r *spotRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting spot %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
