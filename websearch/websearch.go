// Package websearch provides [chatter.SearchProvider] implementations.
//
// Available backends:
//
//   - Google: the Custom Search JSON API; requires an API key and a
//     programmable search engine ID (cx).
//   - DuckDuckGo: free, no API key (scrapes the DuckDuckGo Lite HTML page).
//
// Both backends cap results at their configured maximum and absorb 429
// responses with a bounded backoff. Identical queries are not cached;
// every call goes to the network.
package websearch

import "time"

const (
	// DefaultMaxResults is the number of results requested per query.
	DefaultMaxResults = 5

	// defaultTimeout bounds each HTTP call to a search backend.
	defaultTimeout = 10 * time.Second

	// maxBackoff caps the doubling retry delay on 429 responses.
	maxBackoff = 30 * time.Second
)
