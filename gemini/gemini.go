// Package gemini implements [chatter.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between chatter's
// domain types and the Gemini API types. Calls are blocking: Generate
// returns the fully assembled assistant message. A fixed per-call HTTP
// timeout applies and transient failures are retried once.
package gemini

import "time"

const (
	defaultModel     = "gemini-2.5-pro"
	defaultMaxTokens = 8192

	// requestTimeout bounds each HTTP call to the API.
	requestTimeout = 10 * time.Second

	// retryPause is the wait before the single retry on transient failure.
	retryPause = time.Second
)
