package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	paymentHandler "github.com/DIVIJ08070/doctor-appointment-app/internal/handler/payment"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	catalogH     Handler
	patientH     Handler
	appointmentH Handler
	bookingH     Handler
	profileH     Handler
	paymentH     *paymentHandler.Handler
	h            *handler.Handler
	metrics      *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	catalogH Handler,
	patientH Handler,
	appointmentH Handler,
	bookingH Handler,
	profileH Handler,
	paymentH *paymentHandler.Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		catalogH:     catalogH,
		patientH:     patientH,
		appointmentH: appointmentH,
		bookingH:     bookingH,
		profileH:     profileH,
		paymentH:     paymentH,
		h:            h,
		metrics:      initRouterMetrics(),
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.CORS(config.CORS),
		limiter.Limit(),
		r.metricsMiddleware(),
	)

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", r.h.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Provider return pages carry no session; they sit outside auth.
	returns := r.engine.Group("/api/v1")
	r.paymentH.RegisterReturnRoutes(returns)

	api := r.engine.Group("/api/v1", r.auth.Authenticate())
	r.catalogH.RegisterRoutes(api)
	r.patientH.RegisterRoutes(api)
	r.appointmentH.RegisterRoutes(api)
	r.profileH.RegisterRoutes(api)

	// Booking and payment require a completed profile.
	gated := api.Group("", r.auth.RequireCompleteProfile())
	r.bookingH.RegisterRoutes(gated)
	r.paymentH.RegisterRoutes(gated)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"method", "route", "status"}),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		r.metrics.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
