package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bookcatalog/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T, books ...book.Book) (*http.ServeMux, *book.MemoryRepo) {
	t.Helper()
	repo := book.NewMemoryRepo()
	for _, b := range books {
		require.NoError(t, repo.Insert(context.Background(), b))
	}
	mux := http.NewServeMux()
	NewHandler(book.NewService(repo, nil), nil).Register(mux)
	return mux, repo
}

func postForm(mux *http.ServeMux, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/ui/books", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestIndex(t *testing.T) {
	published := int64(946684800000)
	hooks := book.Book{ID: "1", Title: "All About Love", Author: "bell hooks", Format: book.FormatPrint, PublishedAt: &published, CoverPhoto: "https://example.com/love.jpg"}
	herbert := book.Book{ID: "2", Title: "Dune", Author: "Frank Herbert"}
	mux, _ := newTestMux(t, hooks, herbert)

	t.Run("lists books", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.Contains(t, body, "All About Love")
		assert.Contains(t, body, "Dune")
		assert.Contains(t, body, "Published: 2000-01-01")
		assert.Contains(t, body, `src="https://example.com/love.jpg"`)
		assert.Contains(t, body, "No cover photo found")
	})

	t.Run("print is pre-checked", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		body := w.Body.String()
		assert.Contains(t, body, `value="PRINT" checked`)
		assert.NotContains(t, body, `value="AUDIO" checked`)
	})

	t.Run("search", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?search=herbert", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Dune")
		assert.NotContains(t, body, "All About Love")
	})

	t.Run("added notice", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?added=Dune", nil))

		assert.Contains(t, w.Body.String(), `Added "Dune"`)
	})

	t.Run("stylesheet", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ul.books")
	})
}

func TestCreate(t *testing.T) {
	t.Run("redirects after adding", func(t *testing.T) {
		mux, repo := newTestMux(t)

		w := postForm(mux, url.Values{
			"title":       {"The Left Hand of Darkness"},
			"author":      {"Ursula K. Le Guin"},
			"publishedAt": {"1969-03-01"},
			"format":      {"AUDIO"},
		})

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?added=The+Left+Hand+of+Darkness", w.Header().Get("Location"))

		stored, err := repo.All(context.Background())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, book.FormatAudio, stored[0].Format)
		require.NotNil(t, stored[0].PublishedAt)
	})

	t.Run("format left unset when absent or unknown", func(t *testing.T) {
		for _, format := range []string{"", "EBOOK"} {
			mux, repo := newTestMux(t)

			w := postForm(mux, url.Values{"title": {"Dune"}, "author": {"Frank Herbert"}, "format": {format}})

			require.Equal(t, http.StatusSeeOther, w.Code, format)
			stored, err := repo.All(context.Background())
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Empty(t, stored[0].Format, format)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		mux, repo := newTestMux(t)

		w := postForm(mux, url.Values{"author": {"Anon"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), msgMissingFields)
		stored, _ := repo.All(context.Background())
		assert.Empty(t, stored)
	})

	t.Run("invalid date", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := postForm(mux, url.Values{"title": {"T"}, "author": {"A"}, "publishedAt": {"03/01/1969"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid date for Published At. Must be in YYYY-MM-DD format.")
		assert.Contains(t, w.Body.String(), `value="T"`)
	})
}

type failingCatalog struct{}

func (failingCatalog) List(context.Context, book.Query) ([]book.Book, error) {
	return nil, errors.New("down")
}

func (failingCatalog) Add(context.Context, book.AddInput) (book.Book, error) {
	return book.Book{}, errors.New("down")
}

func TestStorageFailure(t *testing.T) {
	mux := http.NewServeMux()
	NewHandler(failingCatalog{}, nil).Register(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), msgServerError)

	w = postForm(mux, url.Values{"title": {"T"}, "author": {"A"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
