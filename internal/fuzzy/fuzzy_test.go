package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type doc struct {
	title  string
	author string
}

func docFields(d doc) []string { return []string{d.title, d.author} }

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		text    string
		want    float64
		matched bool
	}{
		{"exact prefix", "all", "All About Love", 0, true},
		{"exact substring costs its position", "love", "All About Love", 0.10, true},
		{"case folded", "LOVE", "all about love", 0.10, true},
		{"diacritics stripped", "emile", "Émile Zola", 0, true},
		{"empty query matches anything", "", "Dune", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Score(tt.query, tt.text, Options{})
			assert.Equal(t, tt.matched, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScore_Typos(t *testing.T) {
	s, ok := Score("dnue", "Dune", Options{})
	assert.True(t, ok)
	assert.InDelta(t, 0.5, s, 1e-9)

	s, ok = Score("bel hoks", "bell hooks", Options{})
	assert.True(t, ok)
	assert.Greater(t, s, 0.0)
	assert.LessOrEqual(t, s, DefaultThreshold)
}

func TestScore_NoMatch(t *testing.T) {
	_, ok := Score("zzzz", "All About Love", Options{})
	assert.False(t, ok)

	_, ok = Score("love", "", Options{})
	assert.False(t, ok)
}

func TestScore_Threshold(t *testing.T) {
	_, ok := Score("dnue", "Dune", Options{Threshold: 0.25})
	assert.False(t, ok)
}

func TestRank(t *testing.T) {
	hooks := doc{"All About Love", "bell hooks"}
	marquez := doc{"Love in the Time of Cholera", "Gabriel García Márquez"}
	herbert := doc{"Dune", "Frank Herbert"}
	items := []doc{hooks, marquez, herbert}

	t.Run("best first", func(t *testing.T) {
		got := Rank("love", items, docFields, Options{})
		assert.Equal(t, []doc{marquez, hooks}, got)
	})

	t.Run("matches author", func(t *testing.T) {
		got := Rank("garcia", items, docFields, Options{})
		assert.Equal(t, []doc{marquez}, got)
	})

	t.Run("tolerates typos", func(t *testing.T) {
		got := Rank("dnue", items, docFields, Options{})
		assert.Equal(t, []doc{herbert}, got)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		a := doc{"Alpha", "x"}
		b := doc{"Apple", "y"}
		assert.Equal(t, []doc{a, b}, Rank("a", []doc{a, b}, docFields, Options{}))
		assert.Equal(t, []doc{b, a}, Rank("a", []doc{b, a}, docFields, Options{}))
	})

	t.Run("empty input", func(t *testing.T) {
		got := Rank("love", nil, docFields, Options{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
