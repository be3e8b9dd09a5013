// Package store opens the book repository selected by configuration.
package store

import (
	"context"
	"fmt"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// Open connects to the configured backend and verifies it is reachable.
// The returned close function releases the connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (book.Repository, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory storage; books are lost on restart")
		return book.NewMemoryRepo(), func() {}, nil
	case config.BackendPostgres:
		pool, err := openPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connection OK",
			zap.String("backend", cfg.StorageBackend),
			zap.String("dsn", config.Redacted(cfg.PostgresDSN)),
		)
		return book.NewPostgresRepo(pool, cfg.DBTimeout), pool.Close, nil
	case config.BackendMongo:
		client, err := openMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connection OK",
			zap.String("backend", cfg.StorageBackend),
			zap.String("uri", config.Redacted(cfg.MongoURI)),
			zap.String("database", cfg.MongoDatabase),
			zap.String("collection", cfg.MongoCollection),
		)
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Warn("mongo disconnect failed", zap.Error(err))
			}
		}
		return book.NewMongoRepo(coll, cfg.DBTimeout), closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func openPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", config.Redacted(dsn), err)
	}
	return pool, nil
}

func openMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(uri).SetAppName("bookcatalog"))
	if err != nil {
		return nil, fmt.Errorf("cannot create mongo client: %w", err)
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("cannot ping mongo (%s): %w", config.Redacted(uri), err)
	}
	return client, nil
}
