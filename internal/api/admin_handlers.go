package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"spotbook/internal/entities"
	apperrors "spotbook/internal/errors"
)

type AdminHandler struct {
	Admin     AdminService
	Bookings  BookingService
	Validator *entities.Validator
	Log       *zap.Logger
}

func NewAdminHandler(admin AdminService, bookings BookingService, v *entities.Validator, log *zap.Logger) *AdminHandler {
	return &AdminHandler{Admin: admin, Bookings: bookings, Validator: v, Log: log}
}

func (h *AdminHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateSpotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Validator.Validate(&req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	spot, err := h.Admin.CreateSpot(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, spot)
}

func (h *AdminHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		apperrors.WriteJSON(w, apperrors.ErrBadRequest("invalid spot id"))
		return
	}
	if err := h.Admin.DeleteSpot(r.Context(), id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Spot deleted"})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) UserBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Bookings.ListUserBookings(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CancelBooking removes any user's booking.
func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.CancelBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Validator.Validate(&req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Bookings.Cancel(r.Context(), "", req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}
