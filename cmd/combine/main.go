package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"combine/internal/cache"
	"combine/internal/config"
	apphttp "combine/internal/http"
	applog "combine/internal/log"
	"combine/internal/middleware/auth"
	"combine/internal/sheets"
	gsheet "combine/internal/sheets/google"
	mem "combine/internal/sheets/memory"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	bootLogger := applog.New(applog.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		bootLogger.Error("Invalid configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	manager := cache.NewManager()

	var store sheets.Store
	switch cfg.DataBackend {
	case config.BackendSheets:
		cli := gsheet.New()
		manager.Register(cli)
		store = cli
		logger.Info("Initialized Google Sheets backend")
	default:
		store = mem.Seeded()
		logger.Info("Initialized memory backend")
	}

	var verifier auth.Verifier
	switch cfg.AuthMode {
	case config.AuthInsecure:
		verifier = auth.Insecure{}
		logger.Warn("Session gate running in insecure mode; tokens are not verified")
	default:
		ti, err := auth.NewTokenInfo(context.Background())
		if err != nil {
			logger.Error("Failed to initialize token verifier", applog.FieldError, err.Error())
			os.Exit(1)
		}
		manager.Register(ti)
		verifier = ti
	}

	manager.StartCleanup(10 * time.Minute)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:              ":" + cfg.Port,
		Store:             store,
		Verifier:          verifier,
		Logger:            logger,
		RequestsPerMinute: cfg.RequestsPerMinute,
		StoreTimeout:      cfg.StoreTimeout,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err.Error())
		}
		manager.Stop()
		cancel()
	}()

	logger.Info("Starting server", "port", cfg.Port, "backend", cfg.DataBackend, "auth_mode", cfg.AuthMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
