package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-detail-bff/internal/catalog"
	"product-detail-bff/internal/models"
)

func TestClientFetchProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/42", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.Product{
				ID:     42,
				Title:  "Desk Lamp",
				Price:  24.5,
				Stock:  3,
				Images: []string{"https://cdn.example.com/p/42/a.jpg"},
			})
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)
		p, err := client.FetchProduct(t.Context(), "42")

		require.NoError(t, err)
		assert.Equal(t, 42, p.ID)
		assert.Equal(t, "Desk Lamp", p.Title)
		assert.Equal(t, 24.5, p.Price)
	})

	t.Run("RetriesServerErrors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(models.Product{ID: 1, Title: "Second Try"})
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)
		p, err := client.FetchProduct(t.Context(), "1")

		require.NoError(t, err)
		assert.Equal(t, "Second Try", p.Title)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("NotFoundIsNotRetried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "no such product", http.StatusNotFound)
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)
		_, err := client.FetchProduct(t.Context(), "404")

		assert.ErrorIs(t, err, catalog.ErrFetchFailed)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("TransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := catalog.NewClient(server.URL)
		_, err := client.FetchProduct(t.Context(), "1")

		assert.ErrorIs(t, err, catalog.ErrFetchFailed)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)
		_, err := client.FetchProduct(t.Context(), "1")

		assert.ErrorIs(t, err, catalog.ErrFetchFailed)
	})

	t.Run("BreakerOpensAfterRepeatedFailures", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)
		for i := 0; i < 3; i++ {
			_, err := client.FetchProduct(t.Context(), "404")
			require.ErrorIs(t, err, catalog.ErrFetchFailed)
		}

		before := calls.Load()
		_, err := client.FetchProduct(t.Context(), "404")

		assert.ErrorIs(t, err, catalog.ErrFetchFailed)
		assert.Equal(t, before, calls.Load(), "open breaker should fail fast without a request")
	})
}
