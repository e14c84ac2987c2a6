package chatter

import "context"

// Provider is a strategy pattern interface for LLM providers.
//
// Generate sends the full request and blocks until the assistant's reply
// is complete. Calls are strictly sequential; cancellation flows through
// the context.
type Provider interface {
	Generate(ctx context.Context, req Request) (AssistantMessage, error)
}

// Request carries model selection and generation parameters.
// The provider uses its own defaults when fields are zero/nil.
type Request struct {
	Model        string // model ID, provider-specific; empty = provider default
	SystemPrompt string
	Messages     []Message
	Tools        []Tool
	MaxTokens    int      // 0 = provider default
	Temperature  *float64 // nil = provider default
}
