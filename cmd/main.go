package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customer-service/internal/api"
	"customer-service/internal/api/handler"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/batch"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/database/mongodb"
	"customer-service/internal/infrastructure/database/postgres"
	"customer-service/internal/infrastructure/logging"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
)

const (
	defaultStatsSchedule   = "*/5 * * * *"
	defaultStatsTimeout    = 30 * time.Second
	defaultShutdownTimeout = 20 * time.Second
	cronStopTimeout        = 15 * time.Second
	serverConfirmTimeout   = 5 * time.Second
)

// customerStore bundles what the rest of the app needs from whichever
// database driver is configured.
type customerStore struct {
	repo    customer.Repository
	counter batch.StatusCounter
	ping    handler.PingFunc
	close   func()
}

// @title Customer Service API
// @version 1.0
// @description Customer lifecycle service: registration, lookup, update and soft-delete of customers.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
func main() {
	cfg, logger := initializeApp()

	store, err := initializeStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize customer store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer store.close()

	publisher, closePublisher := initializePublisher(cfg, logger)
	defer closePublisher()

	customerService := customer.NewCustomerService(store.repo, publisher, logger)
	statsJob := batch.NewCustomerStatsJob(store.counter, logger)

	cronScheduler := startBatchJobs(cfg, logger, statsJob)
	limiter := mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger)
	router := api.SetupRouter(customerService, store.ping, limiter, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, limiter, shutdownChan, serverErrors, shutdownTimeout(cfg), logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "database_driver", cfg.Database.Driver)

	return cfg, logger
}

func initializeStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*customerStore, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		return initializeMongoStore(ctx, cfg.Database, logger)
	case config.DriverPostgres:
		return initializePostgresStore(ctx, cfg.Database, logger)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func initializeMongoStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*customerStore, error) {
	logger.Info("Initializing MongoDB customer store...")
	client, err := mongodb.NewClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	coll := client.Database(cfg.Name).Collection(cfg.Collection)
	if err := mongodb.EnsureIndexes(ctx, coll, logger); err != nil {
		logger.Warn("Failed to ensure customer indexes, continuing without them", "error", err)
	}

	repo := mongodb.NewCustomerRepository(coll, cfg.Timeout, logger)
	return &customerStore{
		repo:    repo,
		counter: repo,
		ping: func(ctx context.Context) error {
			return mongodb.Ping(ctx, client)
		},
		close: func() {
			logger.Info("Disconnecting MongoDB client...")
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error("MongoDB disconnect failed", "error", err)
			}
		},
	}, nil
}

func initializePostgresStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*customerStore, error) {
	logger.Info("Initializing PostgreSQL customer store...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := postgres.EnsureSchema(ctx, dbPool, logger); err != nil {
		dbPool.Close()
		return nil, err
	}

	repo := postgres.NewCustomerRepository(dbPool, cfg.Timeout, logger)
	return &customerStore{
		repo:    repo,
		counter: repo,
		ping:    dbPool.Ping,
		close: func() {
			logger.Info("Closing database connection pool...")
			dbPool.Close()
		},
	}, nil
}

// initializePublisher falls back to a no-op publisher when RabbitMQ is
// disabled or unreachable; customer writes never depend on the broker.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.Publisher, func()) {
	noop := func() {}
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published")
		return event.NopPublisher{}, noop
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, customer events will not be published", "error", err)
		return event.NopPublisher{}, noop
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to create RabbitMQ publisher", "error", err)
		conn.Close()
		return event.NopPublisher{}, noop
	}

	logger.Info("RabbitMQ publisher ready", "exchange", cfg.RabbitMQ.ExchangeName)
	return publisher, func() {
		logger.Info("Closing RabbitMQ connection...")
		if err := conn.Close(); err != nil {
			logger.Error("RabbitMQ connection close failed", "error", err)
		}
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return cfg.Server.ShutdownTimeout
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, limiter *mw.RateLimiterMiddleware, shutdownChan <-chan os.Signal, serverErrors <-chan error, timeout time.Duration, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(cronStopTimeout):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Shutting down HTTP server...", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Stopping rate limiter sweeper...")
	limiter.Close()

	if triggerReason != "server exited" {
		logger.Info("Waiting for server goroutine to confirm exit...")
		select {
		case err := <-serverErrors:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
			} else {
				logger.Info("Server goroutine confirmed exit.")
			}
		case <-time.After(serverConfirmTimeout):
			logger.Warn("Timed out waiting for server goroutine confirmation.")
		}
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, statsJob *batch.CustomerStatsJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.StatsSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultStatsSchedule
		logger.Warn("Customer stats schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.StatsTimeout
	if jobTimeout <= 0 {
		jobTimeout = defaultStatsTimeout
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "CustomerStats")
		jobLogger.Debug("Cron triggered: running customer stats job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := statsJob.Run(ctx); runErr != nil {
			jobLogger.Error("Customer stats job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule customer stats job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled customer stats job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
