package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/idempotency"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/logger"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/metrics"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/worker"
)

// Config comes from the environment; the janitor runs wherever the
// postgres idempotency store does.
type Config struct {
	DatabaseURL     string `envconfig:"DATABASE_URL" required:"true"`
	IntervalMinutes int    `envconfig:"SWEEP_INTERVAL_MINUTES" default:"15"`
	MetricsPort     int    `envconfig:"METRICS_PORT" default:"9091"`
}

func main() {
	log := logger.NewLogger(nil)

	var cfg Config
	if err := envconfig.Process("janitor", &cfg); err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("booking_gateway", "janitor")
	store := idempotency.NewPostgresStore(db)
	janitor := worker.NewJanitor(store, time.Duration(cfg.IntervalMinutes)*time.Minute, m, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go janitor.Start(ctx)

	// Expose metrics alongside the sweep loop
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start metrics server")
		}
	}()

	log.Info("idempotency janitor started", "interval_minutes", cfg.IntervalMinutes)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down janitor...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "metrics server forced to shutdown")
	}
}
