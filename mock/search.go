package mock

import (
	"context"

	"chatter"
)

// Interface compliance check.
var _ chatter.SearchProvider = (*SearchProvider)(nil)

// SearchProvider is a test double for chatter.SearchProvider.
// Set SearchFn before calling Search.
type SearchProvider struct {
	SearchFn func(ctx context.Context, query string) ([]chatter.SearchResult, error)
}

// Search delegates to SearchFn.
func (s *SearchProvider) Search(ctx context.Context, query string) ([]chatter.SearchResult, error) {
	return s.SearchFn(ctx, query)
}
