// Package mongostore implements the store interfaces on MongoDB. Domain
// models are mapped to bson documents here so the rest of the codebase stays
// driver-agnostic.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect dials MongoDB with retry and exponential backoff. The caller falls
// back to the in-memory stores when it returns an error.
func Connect(ctx context.Context, uri string, logger zerolog.Logger) (*mongo.Client, error) {
	const maxRetries = 3
	delay := 500 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		client, err := tryConnect(ctx, uri)
		if err == nil {
			logger.Info().Int("attempt", attempt).Msg("MongoDB connected")
			return client, nil
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", attempt).Msg("MongoDB connection failed")

		if attempt < maxRetries {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}
	}
	return nil, fmt.Errorf("mongodb connection failed after %d attempts: %w", maxRetries, lastErr)
}

func tryConnect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the stores rely on. Safe to call on every
// startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"orders", mongo.IndexModel{
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"orders", mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}},
		}},
		{"products", mongo.IndexModel{
			Keys: bson.D{{Key: "category", Value: 1}},
		}},
		{"reviews", mongo.IndexModel{
			Keys: bson.D{{Key: "productId", Value: 1}},
		}},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}
