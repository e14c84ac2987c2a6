package gemini

// Exported internals for white-box testing.
var (
	ConvertResponse     = convertResponse
	ConvertFinishReason = convertFinishReason
	ConvertUsage        = convertUsage
	Retryable           = retryable
)
