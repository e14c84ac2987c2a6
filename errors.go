package chatter

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or message failed validation.
	ErrValidation = errors.New("validation error")

	// ErrToolNotFound indicates the requested tool does not exist.
	ErrToolNotFound = errors.New("tool not found")

	// ErrModelUnavailable indicates the LLM endpoint could not be reached
	// or returned a failure. The turn it occurred in has been rolled back.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrTurnLimit indicates a turn exceeded the configured maximum number
	// of tool rounds without the assistant producing a final answer.
	ErrTurnLimit = errors.New("tool round limit exceeded")
)
