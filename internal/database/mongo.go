package database

import (
	"context"
	"fmt"
	"time"

	"utsavdarshan/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// NewMongo connects to MongoDB and returns the configured database.
// Callers disconnect through db.Client().
func NewMongo(ctx context.Context, cfg *config.StoreConfig) (*mongo.Database, error) {
	clientOptions := mongoClientOptions(cfg)
	timeout := *clientOptions.ConnectTimeout

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	logrus.WithField("database", cfg.MongoDatabase).Info("connected to MongoDB")
	return client.Database(cfg.MongoDatabase), nil
}

// mongoClientOptions never retries writes; a failed insert or update reaches
// the caller once.
func mongoClientOptions(cfg *config.StoreConfig) *options.ClientOptions {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return options.Client().ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(uint64(max(cfg.MaxOpenConns, 1))).
		SetMinPoolSize(uint64(max(cfg.MaxIdleConns, 0))).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxConnIdleTime(cfg.ConnMaxLifetime).
		SetRetryWrites(false).
		SetRetryReads(true).
		SetWriteConcern(writeconcern.Majority()).
		SetReadPreference(readpref.Primary())
}
