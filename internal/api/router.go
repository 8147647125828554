package api

import (
	"log/slog"
	"net/http"
	"time"

	"customer-service/internal/api/handler"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"

	_ "customer-service/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	requestTimeout     = 60 * time.Second
	defaultMetricsPath = "/metrics"
	healthPath         = "/health"
)

// SetupRouter wires the customer API. A nil limiter disables per-client rate
// limiting; the caller owns the limiter and closes it on shutdown.
func SetupRouter(customerService customer.Service, ping handler.PingFunc, limiter *mw.RateLimiterMiddleware, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	metricsPath := metricsPathFor(cfg)

	setupMiddleware(router, limiter, logger, metricsPath)
	setupMetricsEndpoint(router, metricsPath, logger)
	setupCustomerRoutes(router, customerService, logger)
	router.Get(healthPath, handler.NewHealthHandler(ping, logger).Health)
	setupSwaggerEndpoint(router, logger)

	return router
}

func metricsPathFor(cfg *config.Config) string {
	if cfg == nil || cfg.Metrics.Path == "" {
		return defaultMetricsPath
	}
	return cfg.Metrics.Path
}

func setupMiddleware(router *chi.Mux, limiter *mw.RateLimiterMiddleware, logger *slog.Logger, metricsPath string) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger, healthPath, metricsPath))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(requestTimeout))
	if limiter != nil {
		router.Use(limiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, metricsPath string, logger *slog.Logger) {
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupCustomerRoutes(router *chi.Mux, svc customer.Service, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	router.Route("/api/customers", func(r chi.Router) {
		r.Get("/all", h.FindAll)
		r.Post("/save", h.Save)
		r.Put("/update", h.Update)
		r.Delete("/delete/{id}", h.Deactivate)
		r.Get("/document", h.FindByDocument)
		r.Get("/document/{documentNumber}", h.FindByDocumentNumber)
		r.Get("/{id}", h.FindByID)
	})
}
