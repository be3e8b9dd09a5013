package book

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParsePublishedAt parses a publication date leniently. Dates without a zone
// are read as UTC, so "2020-01-02" is midnight UTC. ok is false for empty or
// unparseable input.
func ParsePublishedAt(s string) (ms int64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
