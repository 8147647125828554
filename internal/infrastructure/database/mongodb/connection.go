package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"customer-service/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 5 * time.Second

func NewClient(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*mongo.Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("database name is empty in configuration")
	}

	opts := clientOptions(cfg)

	logger.Info("Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to create mongo client: %w", err)
	}

	if err := verifyConnection(ctx, client, timeoutOrDefault(cfg.Timeout), logger); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Successfully connected to MongoDB.", "db", cfg.Name, "collection", cfg.Collection)
	return client, nil
}

func clientOptions(cfg config.DatabaseConfig) *options.ClientOptions {
	timeout := timeoutOrDefault(cfg.Timeout)
	return options.Client().
		ApplyURI(cfg.URL).
		SetAppName("customer-service").
		SetMaxPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
}

func verifyConnection(ctx context.Context, client *mongo.Client, timeout time.Duration, logger *slog.Logger) error {
	logger.Info("Pinging database...")
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error("Failed to ping database", "error", err)
		return fmt.Errorf("failed to ping database on connect: %w", err)
	}
	return nil
}

// Ping reports whether the primary is reachable. It backs the health endpoint.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(pingCtx, readpref.Primary())
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}
