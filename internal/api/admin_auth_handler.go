package api

import (
	"net/http"

	"go.uber.org/zap"

	"spotbook/internal/entities"
	"spotbook/internal/service"
)

type AdminAuthHandler struct {
	service   service.AdminAuthService
	validator *entities.Validator
	log       *zap.Logger
}

func NewAdminAuthHandler(svc service.AdminAuthService, v *entities.Validator, log *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc, validator: v, log: log}
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		writeError(w, h.log, err)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("admin login failed", zap.String("email", req.Email))
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.LoginResponse{Token: token})
}
