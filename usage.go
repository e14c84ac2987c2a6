package chatter

// Usage tracks token consumption for a single provider call.
//
// InputTokens counts non-cached prompt tokens, CacheReadTokens counts
// tokens served from the provider's prompt cache. Providers normalize
// their API-specific fields to this split and clamp derived values to
// zero to guard against inconsistent upstream data.
type Usage struct {
	InputTokens     int
	OutputTokens    int
	CacheReadTokens int
}
