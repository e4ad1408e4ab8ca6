package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/minimal-api/internal/api"
	"github.com/minimal-api/internal/auth"
	"github.com/minimal-api/internal/middleware"
	"github.com/minimal-api/internal/scheduler"
	"github.com/minimal-api/internal/service"
	"github.com/minimal-api/internal/storage"
)

func runServe(ctx context.Context, cfgFile string) error {
	cfg, log, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("opening store", "driver", cfg.Database.Driver)
	stores, err := storage.Open(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer stores.Close()

	admins := service.NewAdministratorService(stores.Administrators)

	// Create bootstrap administrator if configured
	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		created, err := admins.EnsureSeed(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		if err != nil {
			log.Warn("failed to seed administrator", "error", err)
		} else {
			log.Info("administrator ready", "email", cfg.Seed.AdminEmail, "created", created)
		}
	}

	issuer, err := auth.NewTokenIssuer([]byte(cfg.JWT.Secret))
	if err != nil {
		return err
	}

	health := scheduler.NewHealthMonitor(stores.Pinger, log)
	sched := scheduler.NewScheduler(log)
	if err := health.Register(sched, cfg.Health.Schedule); err != nil {
		return err
	}
	_ = health.Check(ctx)
	sched.Start(ctx)
	defer sched.Stop()

	handler := api.NewHandler(admins, issuer, health, log)
	vehicleHandler := api.NewVehicleHandler(stores.Vehicles, log)
	authMiddleware := middleware.NewAuthMiddleware(auth.NewGuard(issuer), log)
	router := api.NewRouter(api.Routes(handler, vehicleHandler), authMiddleware, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
		return err
	}

	log.Info("server stopped")
	return nil
}
