package websearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"chatter"
)

// ddgRateLimit enforces a global rate limit of 1 query per second across
// all DuckDuckGo instances and goroutines.
var ddgRateLimit struct {
	mu   sync.Mutex
	last time.Time
}

// Interface compliance check.
var _ chatter.SearchProvider = (*DuckDuckGo)(nil)

// DuckDuckGo implements a searcher using DuckDuckGo's HTML lite interface.
// No API key is required, which makes it the fallback backend.
type DuckDuckGo struct {
	MaxResults int

	client  *http.Client
	baseURL string
}

// DuckDuckGoOption configures a [DuckDuckGo] provider.
type DuckDuckGoOption func(*DuckDuckGo)

// WithDuckDuckGoHTTPClient overrides the default HTTP client.
func WithDuckDuckGoHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) { d.client = client }
}

// WithDuckDuckGoBaseURL overrides the endpoint. Used by tests.
func WithDuckDuckGoBaseURL(u string) DuckDuckGoOption {
	return func(d *DuckDuckGo) { d.baseURL = u }
}

// WithDuckDuckGoMaxResults sets how many results to return per query.
func WithDuckDuckGoMaxResults(n int) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if n > 0 {
			d.MaxResults = n
		}
	}
}

// NewDuckDuckGo creates a DuckDuckGo searcher.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		MaxResults: DefaultMaxResults,
		client:     &http.Client{Timeout: defaultTimeout},
		baseURL:    "https://lite.duckduckgo.com/lite/",
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Search scrapes the DuckDuckGo lite HTML page for results.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]chatter.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("duckduckgo: query is empty")
	}

	// Enforce global 1 QPS rate limit.
	ddgRateLimit.mu.Lock()
	if wait := time.Until(ddgRateLimit.last.Add(time.Second)); wait > 0 {
		ddgRateLimit.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		ddgRateLimit.mu.Lock()
	}
	ddgRateLimit.last = time.Now()
	ddgRateLimit.mu.Unlock()

	formData := url.Values{}
	formData.Set("q", query)

	var resp *http.Response
	delay := 1 * time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, strings.NewReader(formData.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err = d.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		// Back off and retry on 429, doubling the delay each time up to 30 s.
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
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return parseLiteResults(string(body), d.MaxResults), nil
}

var (
	// Result links: <a rel="nofollow" href="URL" class='result-link'>TITLE</a>,
	// with either attribute order.
	ddgLinkPattern  = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	ddgLinkPattern2 = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)

	// Snippets live in <td class="result-snippet">.
	ddgSnippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)

	ddgAnyLinkPattern = regexp.MustCompile(`<a[^>]+href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// parseLiteResults extracts search results from the DuckDuckGo lite HTML.
func parseLiteResults(html string, maxResults int) []chatter.SearchResult {
	var results []chatter.SearchResult

	matches := ddgLinkPattern.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = ddgLinkPattern2.FindAllStringSubmatch(html, -1)
	}
	snippetMatches := ddgSnippetPattern.FindAllStringSubmatch(html, -1)

	for i, match := range matches {
		if len(match) < 3 {
			continue
		}

		urlStr := strings.TrimSpace(match[1])
		title := cleanHTML(match[2])

		snippet := ""
		if i < len(snippetMatches) && len(snippetMatches[i]) > 1 {
			snippet = cleanHTML(snippetMatches[i][1])
		}

		if urlStr == "" || title == "" {
			continue
		}

		results = append(results, chatter.SearchResult{
			Title:   title,
			URL:     urlStr,
			Snippet: snippet,
		})
		if len(results) >= maxResults {
			break
		}
	}

	// The lite markup changes occasionally; fall back to any external link.
	if len(results) == 0 {
		results = fallbackParse(html, maxResults)
	}

	return results
}

// fallbackParse tries a simpler approach: collect external links that look
// like search results, deduplicated by URL.
func fallbackParse(html string, maxResults int) []chatter.SearchResult {
	var results []chatter.SearchResult

	matches := ddgAnyLinkPattern.FindAllStringSubmatch(html, -1)
	seen := make(map[string]bool)
	for _, match := range matches {
		if len(match) < 3 {
			continue
		}

		urlStr := strings.TrimSpace(match[1])
		title := cleanHTML(match[2])

		// Skip DuckDuckGo internal links and navigation.
		if strings.Contains(urlStr, "duckduckgo.com") ||
			strings.HasPrefix(urlStr, "/") ||
			strings.HasPrefix(urlStr, "#") ||
			strings.HasPrefix(urlStr, "javascript:") {
			continue
		}
		if len(title) < 5 {
			continue
		}
		if seen[urlStr] {
			continue
		}
		seen[urlStr] = true

		results = append(results, chatter.SearchResult{Title: title, URL: urlStr})
		if len(results) >= maxResults {
			break
		}
	}

	return results
}

// cleanHTML removes HTML tags and decodes common entities.
func cleanHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(s)
}
