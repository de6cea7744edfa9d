package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"tournament/config"
	"tournament/database"
	"tournament/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	envFiles []string

	rootCmd = &cobra.Command{
		Use:          "tournament",
		Short:        "Esports tournament registration server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")
	rootCmd.RunE = runServe
	rootCmd.AddCommand(serveCmd, migrateCmd, adminCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// app holds what every command needs: configuration, a logger and an open
// database.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	db     *database.DB
}

func setup() (*app, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.Log, os.Stderr)
	log.SetDefault(logger)

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "err", err)
	}
}
