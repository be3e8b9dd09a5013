package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book document storage.
type Repository interface {
	// List returns at most limit books in storage order.
	List(ctx context.Context, limit int) ([]Book, error)
	// All returns every stored book in storage order.
	All(ctx context.Context) ([]Book, error)
	Insert(ctx context.Context, b Book) error
	Ping(ctx context.Context) error
}
