package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tournament/database"
	"tournament/export"
	"tournament/handlers"
	"tournament/metrics"
	"tournament/middleware"
	"tournament/notify"
	"tournament/repository"
	"tournament/service"
	"tournament/validation"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()
	cfg, logger := a.cfg, a.logger

	if cfg.GeneratedSecret {
		logger.Warn("SESSION_SECRET not set, generated a temporary secret; sessions end on restart")
	}

	if err := database.Migrate(ctx, a.db, logger); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	v := validation.New()
	catalog := cfg.Catalog()
	teams := repository.NewTeamRepository(a.db.Gorm)
	admins := repository.NewAdminRepository(a.db.Gorm)

	auth := service.NewAuthService(admins, v, logger)
	created, err := auth.EnsureInitialAdmin(ctx, cfg.InitialAdminUsername, cfg.InitialAdminPassword)
	if err != nil {
		return fmt.Errorf("create initial admin: %w", err)
	}
	if created {
		logger.Info("created initial admin", "username", cfg.InitialAdminUsername)
	}

	publisher, err := notify.NewPublisher(cfg.Realtime, logger)
	if err != nil {
		return err
	}
	emitter := notify.NewEmitter(publisher, logger, cfg.Realtime.QueueSize, cfg.Realtime.Timeout)
	defer func() {
		if err := emitter.Close(); err != nil {
			logger.Warn("failed to close realtime publisher", "err", err)
		}
	}()

	exporter := export.NewExporter(cfg.ExportDir, cfg.ExportLocation(), catalog)
	registrations := service.NewRegistrationService(teams, emitter, v, catalog, exporter, logger)
	sessions := middleware.NewSessionManager(cfg.JWTSecret, cfg.JWTExpiration, cfg.IsProduction())

	router := handlers.NewRouter(handlers.RouterConfig{
		Teams:          handlers.NewTeamHandler(registrations, logger),
		Admin:          handlers.NewAdminHandler(registrations, logger),
		Auth:           handlers.NewAuthHandler(auth, sessions, logger),
		Health:         handlers.NewHealthHandler(a.db, logger),
		Sessions:       sessions,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var stats *metrics.StatsServer
	if cfg.MetricsListenAddr != "" {
		stats = metrics.NewStatsServer(cfg.MetricsListenAddr)
	}

	errg, gctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		logger.Info("starting HTTP server", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if stats != nil {
		errg.Go(func() error {
			logger.Info("starting stats server", "addr", stats.Addr())
			if err := stats.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	errg.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var shutdown errgroup.Group
		shutdown.Go(func() error { return srv.Shutdown(shutdownCtx) })
		if stats != nil {
			shutdown.Go(func() error { return stats.Shutdown(shutdownCtx) })
		}
		return shutdown.Wait()
	})

	if err := errg.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
