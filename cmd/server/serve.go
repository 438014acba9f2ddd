package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spotbook/internal/api"
	"spotbook/internal/auth"
	"spotbook/internal/config"
	"spotbook/internal/entities"
	"spotbook/internal/migrate"
	"spotbook/internal/repository"
	"spotbook/internal/service"
)

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the guest cleanup job",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if migrateUp {
				if err := migrate.Up(ctx, a.db, a.log); err != nil {
					return err
				}
			}
			return serve(ctx, a)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	return cmd
}

func newNotifier(cfg *config.Config, log *zap.Logger) service.Notifier {
	var (
		email service.EmailSender
		sms   service.SMSSender
	)
	if cfg.EmailEnabled() {
		email = service.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, log)
	} else {
		log.Warn("SENDGRID_API_KEY or SENDGRID_FROM_EMAIL not set, booking emails disabled")
	}
	if cfg.SMSEnabled() {
		sms = service.NewTwilioSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log)
	} else {
		log.Warn("twilio credentials or FRONT_DESK_PHONE not set, front desk sms disabled")
	}
	return service.NewSenderService(email, sms, cfg.FrontDeskPhone, log)
}

func serve(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log

	bookingRepo := repository.NewBookingRepository(a.db)
	spotRepo := repository.NewSpotRepository(a.db)
	userRepo := repository.NewUserRepository(a.db)
	adminRepo := repository.NewAdminAuthRepository(a.db)
	jobRepo := repository.NewJobRepository(a.db)

	verifier := auth.NewVerifier(cfg.JWTSecret)
	bookingSvc := service.NewBookingService(bookingRepo, newNotifier(cfg, log), log)
	adminSvc := service.NewAdminService(spotRepo, userRepo, log)
	adminAuthSvc := service.NewAdminAuthService(adminRepo, verifier, cfg.AdminJWTTTL)
	jobSvc := service.NewJobService(jobRepo, log)

	scheduler := cron.New()
	if err := jobSvc.Schedule(scheduler, cfg.GuestCleanupCron, cfg.DBTimeout); err != nil {
		return err
	}
	scheduler.Start()

	router := api.NewRouter(api.RouterConfig{
		Bookings:       bookingSvc,
		Admin:          adminSvc,
		AdminAuth:      adminAuthSvc,
		Verifier:       verifier,
		Limiter:        auth.NewRateLimiter(cfg.RateLimitPerMin, log),
		Validator:      entities.NewValidator(),
		Health:         a.db.PingContext,
		AllowedOrigins: cfg.AllowedOrigins(),
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-scheduler.Stop().Done()
	err := srv.Shutdown(shutdownCtx)
	bookingSvc.Wait()
	return err
}
