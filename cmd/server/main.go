package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"golang.org/x/exp/slog"

	"shiftbill/internal/app/server/api"
	"shiftbill/internal/app/server/config"
	"shiftbill/internal/domain/invoice"
	"shiftbill/internal/infrastructure/storage/postgres"
	"shiftbill/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid time zone", "time_zone", cfg.TimeZone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		log.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	pool := storage.Pool()
	service := invoice.NewService(
		postgres.NewStaffRepository(pool, log),
		postgres.NewLineItemRepository(pool, log),
		postgres.NewRequestRepository(pool, log),
		postgres.NewInvoiceRepository(pool, log),
		loc,
		log,
	)

	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: api.New(service, storage, log),
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.Server.RunAddress), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
