package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"cashchange/internal/cli"
	apphttp "cashchange/internal/http"
	applog "cashchange/internal/log"
)

func main() {
	cfg, err := cli.LoadConfig()
	if err != nil {
		applog.New(applog.DefaultConfig()).Error("Configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, applog.ComponentApp)

	register, err := cli.NewRegister(cfg, logger)
	if err != nil {
		logger.Error("Failed to build register", applog.FieldError, err.Error())
		os.Exit(1)
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		Register:           register,
		Logger:             logger,
		NoticeDuration:     cfg.NoticeDuration,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting cashchange server",
			"port", cfg.Port,
			applog.FieldCurrency, register.Currency.Code,
			applog.FieldDenominations, register.Denominations.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
