package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"spotbook/internal/db"
)

type AdminAuthRepository interface {
	// GetByEmail returns nil, nil when no admin has that email.
	GetByEmail(ctx context.Context, email string) (*db.Admin, error)
	Create(ctx context.Context, email, password string) error
}

type adminAuthRepository struct {
	db *sqlx.DB
}

func NewAdminAuthRepository(conn *sqlx.DB) AdminAuthRepository {
	return &adminAuthRepository{db: conn}
}

func (r *adminAuthRepository) GetByEmail(ctx context.Context, email string) (*db.Admin, error) {
	var admin db.Admin
	err := r.db.GetContext(ctx, &admin, `SELECT id, email, password_hash FROM admins WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying admin: %w", err)
	}
	return &admin, nil
}

func (r *adminAuthRepository) Create(ctx context.Context, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO admins (email, password_hash) VALUES ($1, $2)`, email, string(hashed))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s already exists", email)
		}
		return fmt.Errorf("error inserting admin: %w", err)
	}
	return nil
}
