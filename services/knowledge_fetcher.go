package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"novalink-bot/models"
)

// HTTPKnowledgeFetcher pulls the knowledge list as JSON from a configured
// endpoint.
type HTTPKnowledgeFetcher struct {
	URL    string
	APIKey string
	Client *http.Client
}

// NewHTTPKnowledgeFetcher builds a fetcher with a 30 second HTTP timeout.
func NewHTTPKnowledgeFetcher(url, apiKey string) *HTTPKnowledgeFetcher {
	return &HTTPKnowledgeFetcher{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchKnowledgeItems downloads and decodes the knowledge list. Any failure
// is returned to the cache, which keeps serving the previous list.
func (f *HTTPKnowledgeFetcher) FetchKnowledgeItems(ctx context.Context) ([]models.KnowledgeItem, error) {
	if f.URL == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "NovaLinkBot-Knowledge-Fetcher/1.0")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
		req.Header.Set("X-API-Key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch knowledge list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("knowledge source returned status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var items []models.KnowledgeItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge payload: %w", err)
	}

	return items, nil
}
