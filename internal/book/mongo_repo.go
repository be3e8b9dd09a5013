package book

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepo stores each book as one document keyed by its id.
type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) List(ctx context.Context, limit int) ([]Book, error) {
	return r.find(ctx, options.Find().SetLimit(int64(limit)))
}

func (r *MongoRepo) All(ctx context.Context) ([]Book, error) {
	return r.find(ctx, options.Find())
}

func (r *MongoRepo) find(ctx context.Context, opts *options.FindOptions) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(timeoutCtx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	out := []Book{}
	if err := cur.All(timeoutCtx, &out); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return out, nil
}

func (r *MongoRepo) Insert(ctx context.Context, b Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(timeoutCtx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.Database().Client().Ping(timeoutCtx, readpref.Primary())
}
