package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"spotbook/internal/entities"
	apperrors "spotbook/internal/errors"
	"spotbook/internal/parking"
	"spotbook/internal/repository"
	"spotbook/internal/service"
)

// BookingService is what the booking handlers need from the service layer.
type BookingService interface {
	QuickBook(ctx context.Context, userID, email string, req entities.QuickBookRequest) (entities.QuickBookResponse, error)
	BookSpot(ctx context.Context, userID, email string, req entities.BookSpotRequest) (parking.Decision, error)
	Cancel(ctx context.Context, userID string, req entities.CancelBookingRequest) error
	ListUserBookings(ctx context.Context, userID string) (entities.BookingsList, error)
	ListBookings(ctx context.Context, date string) (entities.BookingsList, error)
	AvailableSpots(ctx context.Context, date string) (entities.AvailabilityResponse, error)
	SpotStatuses(ctx context.Context, date, userID string) (entities.SpotStatusResponse, error)
}

type AdminService interface {
	ListSpots(ctx context.Context) ([]parking.Spot, error)
	CreateSpot(ctx context.Context, req entities.CreateSpotRequest) (parking.Spot, error)
	DeleteSpot(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]entities.UserResponse, error)
	EnsureUser(ctx context.Context, id, email string) (entities.UserResponse, error)
}

// RejectedBooking is the body of a single booking the rules turned down.
type RejectedBooking struct {
	Reason   parking.Reason `json:"reason"`
	SpotID   int64          `json:"spotId"`
	SpotCode string         `json:"spotCode"`
	Date     parking.Date   `json:"date"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.ErrBadRequest("invalid request body")
	}
	return nil
}

// writeError maps domain errors onto HTTP errors. Anything unrecognised is
// logged and reported as a 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var (
		he    *apperrors.HTTPError
		verrs entities.ValidationErrors
	)
	switch {
	case errors.As(err, &he):
	case errors.As(err, &verrs):
		he = apperrors.ErrBadRequest(verrs.Error())
	case errors.Is(err, parking.ErrInvalidInput):
		he = apperrors.ErrBadRequest(err.Error())
	case errors.Is(err, parking.ErrSpotNotFound):
		he = apperrors.ErrNotFound("spot not found")
	case errors.Is(err, repository.ErrNotFound):
		he = apperrors.ErrNotFound("not found")
	case errors.Is(err, repository.ErrBookingConflict):
		he = apperrors.ErrConflict("booking conflicts with a booking made meanwhile, nothing was stored")
	case errors.Is(err, repository.ErrDuplicateCode):
		he = apperrors.ErrConflict("spot code already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		he = apperrors.ErrUnauthorized("invalid credentials")
	default:
		log.Error("request failed", zap.Error(err))
		he = apperrors.ErrInternal("internal server error")
	}
	apperrors.WriteJSON(w, he)
}
