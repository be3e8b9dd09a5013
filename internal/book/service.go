package book

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookcatalog/internal/fuzzy"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides book-related business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger

	now   func() time.Time
	newID func() string

	mu          sync.Mutex
	lastCreated int64
}

// NewService creates a new book service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns up to q.Limit books. Without a search term the books come back
// in storage order; with one, the whole collection is ranked by fuzzy match on
// title and author.
func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	limit := limitOrDefault(q.Limit)
	search := TruncateSearch(q.Search)

	if search == "" {
		books, err := s.repo.List(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		if books == nil {
			books = []Book{}
		}
		return books, nil
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books for search: %w", err)
	}
	ranked := fuzzy.Rank(search, all, searchFields, fuzzy.Options{})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Add stores a new book and returns it as written.
func (s *Service) Add(ctx context.Context, in AddInput) (Book, error) {
	if in.Title == "" || in.Author == "" {
		return Book{}, fmt.Errorf("%w: title and author are required", ErrInvalidInput)
	}
	if in.Format != "" && !in.Format.Valid() {
		return Book{}, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, in.Format)
	}

	b := Book{
		ID:         s.newID(),
		Title:      in.Title,
		Author:     in.Author,
		Format:     in.Format,
		CoverPhoto: in.CoverPhoto,
		CreatedAt:  s.stamp(),
	}
	if in.PublishedAt != "" {
		if ms, ok := ParsePublishedAt(in.PublishedAt); ok {
			b.PublishedAt = &ms
		} else {
			s.logger.Debug("unparseable publishedAt dropped",
				zap.String("book_id", b.ID),
				zap.String("published_at", in.PublishedAt),
			)
		}
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		return Book{}, fmt.Errorf("insert book %s: %w", b.ID, err)
	}
	return b, nil
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// stamp returns the current time in milliseconds, never earlier than the
// previous stamp.
func (s *Service) stamp() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.now().UnixMilli()
	if ms < s.lastCreated {
		ms = s.lastCreated
	}
	s.lastCreated = ms
	return ms
}

// TruncateSearch cuts a search term to its first MaxSearchLength characters.
func TruncateSearch(search string) string {
	r := []rune(search)
	if len(r) <= MaxSearchLength {
		return search
	}
	return string(r[:MaxSearchLength])
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func searchFields(b Book) []string {
	return []string{b.Title, b.Author}
}
