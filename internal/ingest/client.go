package ingest

import (
	"context"       // Request-scoped cancellation
	"encoding/json" // JSON decoding
	"fmt"           // Error wrapping
	"net/http"      // HTTP client
	"net/url"       // Query building
	"strconv"       // String conversion
	"time"          // Client timeout

	"tender/internal/catalog" // Seed triples
)

// Client talks to the upstream recipe search API that seeds the catalog.
// The application never writes recipes any other way.
type Client struct {
	baseURL    string       // API base URL
	apiKey     string       // API key
	httpClient *http.Client // HTTP client with timeout
}

// NewClient creates an ingestion client for the given API endpoint
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL, // API base URL
		apiKey:  apiKey,  // API key
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // Upstream can be slow
		},
	}
}

// searchResponse is the upstream search payload
type searchResponse struct {
	Results []searchResult `json:"results"` // Matched recipes
}

// searchResult is one upstream recipe
type searchResult struct {
	ID    int    `json:"id"`    // Upstream recipe id
	Title string `json:"title"` // Recipe title
	Image string `json:"image"` // Image URL
}

// SearchRecipes fetches up to number recipes from the upstream search
// endpoint and returns them as validated seed triples.
func (c *Client) SearchRecipes(ctx context.Context, number int) ([]catalog.SeedRecipe, error) {
	// Build the search URL
	endpoint := c.baseURL + "/recipes/complexSearch"
	params := url.Values{}
	params.Set("number", strconv.Itoa(number)) // How many results to fetch
	params.Set("apiKey", c.apiKey)             // Upstream authentication
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	// Execute the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	defer resp.Body.Close()
	// Anything but 200 is a failed search
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search recipes: unexpected status %d", resp.StatusCode)
	}
	// Decode the payload
	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	// Map upstream results to seed triples, dropping incomplete entries
	seeds := make([]catalog.SeedRecipe, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.ID == 0 || r.Title == "" {
			continue // Upstream sent a partial record
		}
		seeds = append(seeds, catalog.SeedRecipe{
			SourceID: r.ID,    // Upstream recipe id
			Title:    r.Title, // Recipe title
			ImageURL: r.Image, // Image URL
		})
	}
	return seeds, nil
}
