package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spotbook/internal/config"
	"spotbook/internal/db"
	"spotbook/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spotbook",
		Short:         "Workplace parking spot booking backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newAdminCmd())
	root.AddCommand(newCleanupCmd())
	return root
}

type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *sqlx.DB
}

func (a *app) Close() {
	a.db.Close()
	_ = a.log.Sync()
}

// bootstrap loads config, builds the logger and connects to the database.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()
	conn, err := db.Open(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: conn}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
