package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avendra/hotelops-backend/api/routes"
	"github.com/avendra/hotelops-backend/internal/audit"
	"github.com/avendra/hotelops-backend/internal/booking"
	"github.com/avendra/hotelops-backend/internal/kot"
	"github.com/avendra/hotelops-backend/internal/stock"
	"github.com/avendra/hotelops-backend/internal/vouchers"
	"github.com/avendra/hotelops-backend/pkg/config"
	"github.com/avendra/hotelops-backend/pkg/db"
	"github.com/avendra/hotelops-backend/pkg/logger"
	"github.com/avendra/hotelops-backend/pkg/metrics"
	"github.com/avendra/hotelops-backend/pkg/migrate"
	"github.com/avendra/hotelops-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ledgerMetrics := metrics.NewLedgerMetrics(prometheus.DefaultRegisterer)
	recorder := audit.NewRecorder(dbClient.DB(), logg)

	stockService := stock.NewService(dbClient, stock.NewRepository(dbClient.DB()), logg, recorder, ledgerMetrics)
	bookingService := booking.NewService(dbClient, booking.NewRepository(dbClient.DB()), logg, recorder, ledgerMetrics)
	voucherService := vouchers.NewService(dbClient, vouchers.NewRepository(dbClient.DB()), logg, recorder, ledgerMetrics)
	kotService := kot.NewService(dbClient, kot.NewRepository(dbClient.DB()), stockService, logg, recorder, ledgerMetrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, stockService, bookingService, voucherService, kotService),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
