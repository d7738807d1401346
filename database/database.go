package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/AKSHAYxGITHUB/remote-classroom/config"
)

// Connect dials the store and verifies it is reachable with a ping. Nothing
// in this layer works without a live store, so callers treat a failure here
// as fatal at startup.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(20 * time.Second).
		SetConnectTimeout(20 * time.Second).
		SetSocketTimeout(20 * time.Second).
		SetRetryWrites(true).
		SetMinPoolSize(10).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb unreachable: %w", err)
	}

	return client, nil
}
