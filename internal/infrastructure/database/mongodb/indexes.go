package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	indexDocument       = "documentType_documentNumber"
	indexDocumentNumber = "documentNumber"
	indexStatus         = "status"
)

// EnsureIndexes creates the lookup indexes used by the repository. They are
// not unique: uniqueness of (documentType, documentNumber) is checked by the
// lifecycle service.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, logger *slog.Logger) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "documentType", Value: 1}, {Key: "documentNumber", Value: 1}},
			Options: options.Index().SetName(indexDocument),
		},
		{
			Keys:    bson.D{{Key: "documentNumber", Value: 1}},
			Options: options.Index().SetName(indexDocumentNumber),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName(indexStatus),
		},
	}

	logger.InfoContext(ctx, "Ensuring customer indexes", slog.String("collection", coll.Name()))
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create customer indexes", slog.Any("error", err))
		return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
	}
	logger.InfoContext(ctx, "Customer indexes ensured", slog.Any("indexes", names))
	return nil
}
