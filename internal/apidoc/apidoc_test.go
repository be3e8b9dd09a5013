package apidoc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	h, err := NewHandler()
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.Register(mux)

	t.Run("json", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])

		paths, ok := doc["paths"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, paths, "/book")
		assert.Contains(t, paths, "/book/add")
	})

	t.Run("yaml", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
	})
}
