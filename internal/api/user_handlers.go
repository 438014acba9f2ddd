package api

import (
	"net/http"

	"go.uber.org/zap"

	"spotbook/internal/auth"
	"spotbook/internal/entities"
	apperrors "spotbook/internal/errors"
)

type UserBookingHandler struct {
	Bookings  BookingService
	Admin     AdminService
	Validator *entities.Validator
	Log       *zap.Logger
}

func NewUserBookingHandler(bookings BookingService, admin AdminService, v *entities.Validator, log *zap.Logger) *UserBookingHandler {
	return &UserBookingHandler{Bookings: bookings, Admin: admin, Validator: v, Log: log}
}

func (h *UserBookingHandler) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.UserFromContext(r.Context())
	if !ok {
		apperrors.WriteJSON(w, apperrors.ErrUnauthorized("missing identity"))
	}
	return id, ok
}

func (h *UserBookingHandler) QuickBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req entities.QuickBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Validator.Validate(&req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	resp, err := h.Bookings.QuickBook(r.Context(), id.UserID, id.Email, req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserBookingHandler) BookSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req entities.BookSpotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Validator.Validate(&req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	dec, err := h.Bookings.BookSpot(r.Context(), id.UserID, id.Email, req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if !dec.Accepted() {
		writeJSON(w, http.StatusUnprocessableEntity, RejectedBooking{
			Reason:   dec.Reason,
			SpotID:   dec.Spot.ID,
			SpotCode: dec.Spot.Code,
			Date:     dec.Date,
		})
		return
	}
	writeJSON(w, http.StatusCreated, dec.Booking)
}

func (h *UserBookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req entities.CancelBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Validator.Validate(&req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Bookings.Cancel(r.Context(), id.UserID, req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}

func (h *UserBookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	list, err := h.Bookings.ListUserBookings(r.Context(), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *UserBookingHandler) AllBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Bookings.ListBookings(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *UserBookingHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Admin.ListSpots(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

func (h *UserBookingHandler) AvailableSpots(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Bookings.AvailableSpots(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserBookingHandler) SpotStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	resp, err := h.Bookings.SpotStatuses(r.Context(), r.URL.Query().Get("date"), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserBookingHandler) EnsureUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	u, err := h.Admin.EnsureUser(r.Context(), id.UserID, id.Email)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
