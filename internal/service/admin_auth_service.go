package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"spotbook/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type TokenIssuer interface {
	IssueAdminToken(adminID int64, email string, ttl time.Duration, now time.Time) (string, error)
}

type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateAdmin(ctx context.Context, email, password string) error
}

type adminAuthService struct {
	repo   repository.AdminAuthRepository
	tokens TokenIssuer
	ttl    time.Duration
}

func NewAdminAuthService(repo repository.AdminAuthRepository, tokens TokenIssuer, ttl time.Duration) AdminAuthService {
	return &adminAuthService{repo: repo, tokens: tokens, ttl: ttl}
}

func (s *adminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.IssueAdminToken(admin.ID, admin.Email, s.ttl, time.Now())
}

func (s *adminAuthService) CreateAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return s.repo.Create(ctx, email, password)
}
