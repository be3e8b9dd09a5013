// Package fuzzy ranks items by approximate string match of a query against
// one or more of their text fields.
//
// Scores run from 0 (exact match at the start of a field) to 1 (no match).
// An exact substring match costs only its distance from the start of the
// field; otherwise the best window of the field is compared by edit distance
// and the edit ratio is added to the position cost.
package fuzzy

import (
	"slices"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultThreshold = 0.6
	DefaultDistance  = 100
)

// Options tunes the matcher. Zero values fall back to the defaults.
type Options struct {
	// Threshold is the highest score still considered a match.
	Threshold float64
	// Distance is how far from the start of a field a match may drift
	// before the position alone disqualifies it.
	Distance int
}

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Distance <= 0 {
		o.Distance = DefaultDistance
	}
	return o
}

type scored[T any] struct {
	item  T
	score float64
}

// Rank returns the items matching query, best first. Items with equal scores
// keep their input order. fields extracts the searchable text of an item.
func Rank[T any](query string, items []T, fields func(T) []string, opts Options) []T {
	opts = opts.withDefaults()
	q := normalize(query)

	matches := make([]scored[T], 0, len(items))
	for _, it := range items {
		best, matched := 1.0, false
		for _, f := range fields(it) {
			s, ok := score(q, normalize(f), opts)
			if ok && (!matched || s < best) {
				best, matched = s, true
			}
		}
		if matched {
			matches = append(matches, scored[T]{item: it, score: best})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored[T]) int {
		switch {
		case a.score < b.score:
			return -1
		case a.score > b.score:
			return 1
		}
		return 0
	})

	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// Score reports how well query matches text and whether it is within the
// threshold.
func Score(query, text string, opts Options) (float64, bool) {
	return score(normalize(query), normalize(text), opts.withDefaults())
}

func score(q, text string, opts Options) (float64, bool) {
	if q == "" {
		return 0, true
	}
	if text == "" {
		return 1, false
	}

	if i := strings.Index(text, q); i >= 0 {
		s := float64(len([]rune(text[:i]))) / float64(opts.Distance)
		return s, s <= opts.Threshold
	}

	qr, tr := []rune(q), []rune(text)
	m := len(qr)
	best := 1.0
	for start := 0; start < len(tr); start++ {
		proximity := float64(start) / float64(opts.Distance)
		if proximity >= best {
			break
		}
		for _, w := range []int{m - 1, m, m + 1} {
			if w < 1 {
				continue
			}
			end := start + w
			if end > len(tr) {
				end = len(tr)
			}
			d := levenshtein.ComputeDistance(q, string(tr[start:end]))
			if s := float64(d)/float64(m) + proximity; s < best {
				best = s
			}
			if end == len(tr) {
				break
			}
		}
	}
	return best, best <= opts.Threshold
}

// normalize folds case and drops combining marks so "Émile" matches "emile".
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}
