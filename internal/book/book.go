package book

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput is returned when an add request is missing required fields.
	ErrInvalidInput = errors.New("invalid book input")
	// ErrConflict is returned when a book with the same id is already stored.
	ErrConflict = errors.New("book already exists")
)

const (
	DefaultLimit    = 10
	MaxSearchLength = 60
)

// Format is the medium a book is published in.
type Format string

const (
	FormatPrint Format = "PRINT"
	FormatAudio Format = "AUDIO"
)

// Formats lists every accepted format in display order.
var Formats = []Format{FormatPrint, FormatAudio}

func (f Format) Valid() bool {
	return f == FormatPrint || f == FormatAudio
}

// Book represents a catalog record. Timestamps are milliseconds since the Unix epoch.
type Book struct {
	ID          string `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	Author      string `json:"author" bson:"author"`
	Format      Format `json:"format,omitempty" bson:"format,omitempty"`
	CoverPhoto  string `json:"coverPhoto,omitempty" bson:"coverPhoto,omitempty"`
	PublishedAt *int64 `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	CreatedAt   int64  `json:"createdAt" bson:"createdAt"`
}

// AddInput carries the fields a caller may set when adding a book.
type AddInput struct {
	Title       string
	Author      string
	Format      Format
	CoverPhoto  string
	PublishedAt string
}

// Query defines the list/search parameters.
type Query struct {
	Limit  int
	Search string
}

// Published returns the publication time, if known.
func (b Book) Published() (time.Time, bool) {
	if b.PublishedAt == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*b.PublishedAt).UTC(), true
}
