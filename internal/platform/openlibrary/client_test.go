package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "subject:science fiction", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "bookcatalog-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"numFound":2,"docs":[
			{"key":"/works/OL1","title":"Dune","author_name":["Frank Herbert"],"first_publish_year":1965,"cover_i":42},
			{"key":"/works/OL2","title":"Solaris","author_name":["Stanisław Lem"]}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("bookcatalog-test", 100, 0, WithBaseURL(srv.URL+"/"))
	res, err := c.SearchBooks(context.Background(), "science fiction", 2)

	require.NoError(t, err)
	require.Len(t, res.Docs, 2)
	assert.Equal(t, "Dune", res.Docs[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, res.Docs[0].AuthorNames)
	assert.Equal(t, 1965, res.Docs[0].FirstPublishYear)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/42-M.jpg", c.CoverURL(res.Docs[0]))
	assert.Empty(t, c.CoverURL(res.Docs[1]))
}

func TestSearchBooks_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"numFound":0,"docs":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test", 100, 2, WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	_, err := c.SearchBooks(context.Background(), "poetry", 1)

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearchBooks_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("test", 100, 3, WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	_, err := c.SearchBooks(context.Background(), "poetry", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearchBooks_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test", 100, 1, WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	_, err := c.SearchBooks(context.Background(), "poetry", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 1 retries")
}
