package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chatter"
	"chatter/logger"
)

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

// Interface compliance check.
var _ chatter.SearchProvider = (*Google)(nil)

// Google queries the Google Custom Search JSON API. An API key and a
// programmable search engine ID (cx) are required.
type Google struct {
	APIKey     string
	CSEID      string
	MaxResults int

	client  *http.Client
	baseURL string
}

// GoogleOption configures a [Google] provider.
type GoogleOption func(*Google)

// WithGoogleHTTPClient overrides the default HTTP client, e.g. to change
// the timeout.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(g *Google) { g.client = client }
}

// WithGoogleBaseURL overrides the API endpoint. Used by tests.
func WithGoogleBaseURL(u string) GoogleOption {
	return func(g *Google) { g.baseURL = u }
}

// WithGoogleMaxResults sets how many results to request per query.
func WithGoogleMaxResults(n int) GoogleOption {
	return func(g *Google) {
		if n > 0 {
			g.MaxResults = n
		}
	}
}

// NewGoogle constructs a Google search provider.
func NewGoogle(apiKey, cseID string, opts ...GoogleOption) *Google {
	g := &Google{
		APIKey:     apiKey,
		CSEID:      cseID,
		MaxResults: DefaultMaxResults,
		client:     &http.Client{Timeout: defaultTimeout},
		baseURL:    googleEndpoint,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Search executes one Custom Search query and returns up to MaxResults
// results. A 429 response is retried with a doubling delay capped at 30 s;
// other non-200 statuses are errors.
func (g *Google) Search(ctx context.Context, query string) ([]chatter.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("google: query is empty")
	}
	if strings.TrimSpace(g.APIKey) == "" || strings.TrimSpace(g.CSEID) == "" {
		return nil, errors.New("google: API key or search engine ID is missing")
	}

	params := url.Values{}
	params.Set("key", g.APIKey)
	params.Set("cx", g.CSEID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(g.MaxResults))
	endpoint := g.baseURL + "?" + params.Encode()

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err = g.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		// Back off and retry on 429, doubling the delay each time up to 30 s.
		logger.Warn("google search rate limited, backing off", "delay", delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < maxBackoff {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google http %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	results := make([]chatter.SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, chatter.SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
		if len(results) >= g.MaxResults {
			break
		}
	}
	return results, nil
}
