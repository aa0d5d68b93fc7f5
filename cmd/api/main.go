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
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	bookingService "github.com/DIVIJ08070/doctor-appointment-app/internal/booking"
	catalogService "github.com/DIVIJ08070/doctor-appointment-app/internal/catalog"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/config"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	appointmentHandler "github.com/DIVIJ08070/doctor-appointment-app/internal/handler/appointment"
	bookingHandler "github.com/DIVIJ08070/doctor-appointment-app/internal/handler/booking"
	catalogHandler "github.com/DIVIJ08070/doctor-appointment-app/internal/handler/catalog"
	patientHandler "github.com/DIVIJ08070/doctor-appointment-app/internal/handler/patient"
	paymentHandler "github.com/DIVIJ08070/doctor-appointment-app/internal/handler/payment"
	profileHandler "github.com/DIVIJ08070/doctor-appointment-app/internal/handler/profile"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/idempotency"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/medify"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/middleware"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/notifier"
	paymentService "github.com/DIVIJ08070/doctor-appointment-app/internal/payment"
	profileService "github.com/DIVIJ08070/doctor-appointment-app/internal/profile"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/router"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/auth"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	m := metrics.NewMetrics("booking_gateway", "api")

	// Initialize the idempotency store: redis when configured, then
	// postgres, falling back to in-process memory.
	store, cleanup, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize idempotency store")
	}
	defer cleanup()

	// Initialize the upstream backend client
	backend := medify.NewClient(medify.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout(),
		Metrics: m,
	})

	// Initialize services
	catalogSvc := catalogService.NewService(backend, cfg.Cache.CatalogTTL())
	idemManager := idempotency.NewManager(store, cfg.Cache.IdempotencyTTL(), m)
	profileSvc := profileService.NewService(store)
	paymentSvc := paymentService.NewService(backend, paymentService.Config{
		GatewayURL:   cfg.Payment.GatewayURL,
		SuccessURL:   cfg.Payment.SuccessURL,
		FailureURL:   cfg.Payment.FailureURL,
		MerchantSalt: cfg.Payment.MerchantSalt,
	}, m)

	var mailer bookingService.Notifier
	if cfg.SMTP.Enabled() {
		mailer = notifier.NewEmailNotifier(notifier.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	bookingSvc := bookingService.NewService(backend, catalogSvc, idemManager, mailer, m)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(auth.NewVerifier(cfg.JWT.Secret), profileSvc)

	// Initialize handlers
	h := handler.NewHandler()
	catalogH := catalogHandler.NewHandler(catalogSvc)
	patientH := patientHandler.NewHandler(backend)
	appointmentH := appointmentHandler.NewHandler(backend)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	profileH := profileHandler.NewHandler(profileSvc)
	paymentH := paymentHandler.NewHandler(paymentSvc)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		catalogH,
		patientH,
		appointmentH,
		bookingH,
		profileH,
		paymentH,
		h,
		router.Config{
			RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst: cfg.RateLimit.Burst,
			CORS:      middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("booking gateway started")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func newStore(cfg *config.Config) (idempotency.Store, func(), error) {
	if cfg.Redis.URL != "" {
		store, err := idempotency.NewRedisStore(cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}

	if cfg.Database.Host != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		return idempotency.NewPostgresStore(db), func() { db.Close() }, nil
	}

	log.Warn().Msg("no redis or database configured; idempotency records are process-local")
	return idempotency.NewMemoryStore(), func() {}, nil
}
