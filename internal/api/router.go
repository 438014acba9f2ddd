package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"spotbook/internal/auth"
	"spotbook/internal/entities"
	"spotbook/internal/logging"
	"spotbook/internal/service"
)

type RouterConfig struct {
	Bookings       BookingService
	Admin          AdminService
	AdminAuth      service.AdminAuthService
	Verifier       *auth.Verifier
	Limiter        *auth.RateLimiter
	Validator      *entities.Validator
	Health         func(ctx context.Context) error
	AllowedOrigins []string
	Log            *zap.Logger
}

type recoveryLogger struct {
	log *zap.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error("panic recovered", zap.String("panic", fmt.Sprint(v...)))
}

func NewRouter(cfg RouterConfig) http.Handler {
	userHandler := NewUserBookingHandler(cfg.Bookings, cfg.Admin, cfg.Validator, cfg.Log)
	adminHandler := NewAdminHandler(cfg.Admin, cfg.Bookings, cfg.Validator, cfg.Log)
	authHandler := NewAdminAuthHandler(cfg.AdminAuth, cfg.Validator, cfg.Log)
	requestLog := logging.Middleware(cfg.Log)

	r := mux.NewRouter()

	// Public endpoints
	public := r.NewRoute().Subrouter()
	public.Use(requestLog)
	public.HandleFunc("/healthz", healthHandler(cfg.Health)).Methods(http.MethodGet)
	public.HandleFunc("/admin/login", authHandler.Login).Methods(http.MethodPost)

	// User endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.Use(requestLog, cfg.Verifier.UserMiddleware)
	if cfg.Limiter != nil {
		api.Use(cfg.Limiter.Middleware)
	}
	api.HandleFunc("/spots", userHandler.ListSpots).Methods(http.MethodGet)
	api.HandleFunc("/spots/available", userHandler.AvailableSpots).Methods(http.MethodGet)
	api.HandleFunc("/spots/status", userHandler.SpotStatus).Methods(http.MethodGet)
	api.HandleFunc("/bookings/quick", userHandler.QuickBook).Methods(http.MethodPost)
	api.HandleFunc("/bookings/me", userHandler.MyBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", userHandler.BookSpot).Methods(http.MethodPost)
	api.HandleFunc("/bookings", userHandler.AllBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", userHandler.CancelBooking).Methods(http.MethodDelete)
	api.HandleFunc("/users/me", userHandler.EnsureUser).Methods(http.MethodPost)

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(requestLog, cfg.Verifier.AdminMiddleware)
	admin.HandleFunc("/spots", adminHandler.CreateSpot).Methods(http.MethodPost)
	admin.HandleFunc("/spots/{id:[0-9]+}", adminHandler.DeleteSpot).Methods(http.MethodDelete)
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/bookings", adminHandler.UserBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", adminHandler.CancelBooking).Methods(http.MethodDelete)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: cfg.Log}),
		handlers.PrintRecoveryStack(false),
	)
	return recovery(cors(r))
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
