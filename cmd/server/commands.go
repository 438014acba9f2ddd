package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spotbook/internal/auth"
	"spotbook/internal/migrate"
	"spotbook/internal/repository"
	"spotbook/internal/service"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			return migrate.Up(ctx, a.db, a.log)
		},
	}
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var email, password string

	c := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := migrate.Up(ctx, a.db, a.log); err != nil {
				return err
			}

			svc := service.NewAdminAuthService(repository.NewAdminAuthRepository(a.db), auth.NewVerifier(a.cfg.JWTSecret), a.cfg.AdminJWTTTL)
			if err := svc.CreateAdmin(ctx, email, password); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created admin %q\n", email)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "admin email")
	c.Flags().StringVar(&password, "password", "", "admin password")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-guests",
		Short: "Delete guest spots whose date has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := service.NewJobService(repository.NewJobRepository(a.db), a.log).CleanupGuestSpots(ctx)
			if err != nil {
				return err
			}
			a.log.Info("guest cleanup done", zap.Int64("deleted", n))
			return nil
		},
	}
}
