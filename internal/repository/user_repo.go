package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"spotbook/internal/db"
)

type UserRepository interface {
	// Upsert records the user on first sight and refreshes a changed email.
	Upsert(ctx context.Context, id, email string) (db.User, error)
	List(ctx context.Context) ([]db.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &userRepository{db: conn}
}

func (r *userRepository) Upsert(ctx context.Context, id, email string) (db.User, error) {
	query := `
		INSERT INTO users (id, email) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email)
		RETURNING id, email, created_at`

	var u db.User
	if err := r.db.GetContext(ctx, &u, query, id, email); err != nil {
		return db.User{}, fmt.Errorf("error upserting user: %w", err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]db.User, error) {
	users := []db.User{}
	if err := r.db.SelectContext(ctx, &users, `SELECT id, email, created_at FROM users ORDER BY email`); err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	return users, nil
}
