package chatter

import "context"

// SearchResult is a single item returned by a SearchProvider.
// Results are transient: produced by one search call and consumed
// immediately by the summarizer, never retained.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// SearchProvider executes a web search query and returns results.
// Implementations cap the result count at their configured maximum.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
