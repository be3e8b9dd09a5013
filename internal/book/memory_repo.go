package book

import (
	"context"
	"sync"
)

// MemoryRepo keeps books in process memory in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	books []Book
	ids   map[string]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{ids: make(map[string]struct{})}
}

func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.books)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]Book, n)
	copy(out, r.books[:n])
	return out, nil
}

func (r *MemoryRepo) All(ctx context.Context) ([]Book, error) {
	return r.List(ctx, -1)
}

func (r *MemoryRepo) Insert(ctx context.Context, b Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ids[b.ID]; exists {
		return ErrConflict
	}
	r.ids[b.ID] = struct{}{}
	r.books = append(r.books, b)
	return nil
}

func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
