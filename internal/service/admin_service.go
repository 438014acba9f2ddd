package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"spotbook/internal/entities"
	"spotbook/internal/parking"
	"spotbook/internal/repository"
	"spotbook/internal/utils"
)

// AdminService manages the spot inventory and the known users.
type AdminService struct {
	spots repository.SpotRepository
	users repository.UserRepository
	log   *zap.Logger
}

func NewAdminService(spots repository.SpotRepository, users repository.UserRepository, log *zap.Logger) *AdminService {
	return &AdminService{spots: spots, users: users, log: log}
}

func (s *AdminService) ListSpots(ctx context.Context) ([]parking.Spot, error) {
	return s.spots.List(ctx)
}

// CreateSpot adds a spot. Guest spots must name the one date they are
// available on; no other category may carry a date.
func (s *AdminService) CreateSpot(ctx context.Context, req entities.CreateSpotRequest) (parking.Spot, error) {
	category, err := utils.ParseSpotCategory(req.Type)
	if err != nil {
		return parking.Spot{}, fmt.Errorf("%w: %v", parking.ErrInvalidInput, err)
	}

	spot := parking.Spot{Code: req.Code, Location: req.Location, Category: category}
	switch {
	case category == parking.CategoryGuest && req.AvailableDate == "":
		return parking.Spot{}, fmt.Errorf("%w: guest spots need an availableDate", parking.ErrInvalidInput)
	case category != parking.CategoryGuest && req.AvailableDate != "":
		return parking.Spot{}, fmt.Errorf("%w: only guest spots take an availableDate", parking.ErrInvalidInput)
	case req.AvailableDate != "":
		d, err := parking.ParseDate(req.AvailableDate)
		if err != nil {
			return parking.Spot{}, fmt.Errorf("%w: %v", parking.ErrInvalidInput, err)
		}
		spot.AvailableDate = &d
	}

	created, err := s.spots.Create(ctx, spot)
	if err != nil {
		return parking.Spot{}, err
	}
	s.log.Info("spot created", zap.Int64("id", created.ID), zap.String("code", created.Code), zap.String("type", string(created.Category)))
	return created, nil
}

func (s *AdminService) DeleteSpot(ctx context.Context, id int64) error {
	if err := s.spots.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("spot deleted", zap.Int64("id", id))
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]entities.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, entities.UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt})
	}
	return out, nil
}

// EnsureUser records the caller the first time they show up.
func (s *AdminService) EnsureUser(ctx context.Context, id, email string) (entities.UserResponse, error) {
	u, err := s.users.Upsert(ctx, id, email)
	if err != nil {
		return entities.UserResponse{}, err
	}
	return entities.UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}, nil
}
