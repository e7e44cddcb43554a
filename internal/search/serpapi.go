// Package search is a client for the SerpAPI web-search service, used to
// bias interview question style with real-world search snippets.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoResults is returned when the search succeeds but yields nothing usable
var ErrNoResults = errors.New("no search results")

const serpAPIEndpoint = "https://serpapi.com/search"

// Client queries SerpAPI for text snippets
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a SerpAPI client with the given credential
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   serpAPIEndpoint,
		httpClient: http.DefaultClient,
	}
}

type searchResponse struct {
	Error     string `json:"error,omitempty"`
	AnswerBox struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answer_box"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Run issues a search query and returns the result snippets joined into a
// single text blob, in result order
func (c *Client) Run(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search backend returned status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("search backend error: %s", out.Error)
	}

	var parts []string
	if out.AnswerBox.Answer != "" {
		parts = append(parts, out.AnswerBox.Answer)
	}
	if out.AnswerBox.Snippet != "" {
		parts = append(parts, out.AnswerBox.Snippet)
	}
	for _, r := range out.OrganicResults {
		if r.Snippet != "" {
			parts = append(parts, r.Snippet)
		}
	}

	if len(parts) == 0 {
		return "", ErrNoResults
	}

	return strings.Join(parts, "\n"), nil
}
