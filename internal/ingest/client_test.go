package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The client queries the search endpoint and maps results to seed triples
func TestSearchRecipes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("number"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"id":12345,"title":"Test Recipe","image":"https://example.com/a.jpg"},
			{"id":67890,"title":"Other Recipe","image":"https://example.com/b.jpg"},
			{"id":0,"title":"Broken Record","image":""}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	seeds, err := client.SearchRecipes(context.Background(), 3)
	require.NoError(t, err)

	// The record without an upstream id is dropped
	require.Len(t, seeds, 2)
	assert.Equal(t, 12345, seeds[0].SourceID)
	assert.Equal(t, "Test Recipe", seeds[0].Title)
	assert.Equal(t, "https://example.com/a.jpg", seeds[0].ImageURL)
}

// Upstream failures surface as errors, not empty results
func TestSearchRecipesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key")
	_, err := client.SearchRecipes(context.Background(), 3)
	assert.Error(t, err)
}

// Garbage payloads surface as decode errors
func TestSearchRecipesBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	_, err := client.SearchRecipes(context.Background(), 3)
	assert.Error(t, err)
}
