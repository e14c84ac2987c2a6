package mock

import (
	"context"
	"encoding/json"

	"chatter"
)

// Interface compliance check.
var _ chatter.ToolExecutor = (*ToolExecutor)(nil)

// ToolExecutor is a test double for chatter.ToolExecutor.
// Set ExecuteFn before calling Execute.
type ToolExecutor struct {
	ExecuteFn func(ctx context.Context, name string, args json.RawMessage) (*chatter.ToolResult, error)
}

// Execute delegates to ExecuteFn.
func (e *ToolExecutor) Execute(ctx context.Context, name string, args json.RawMessage) (*chatter.ToolResult, error) {
	return e.ExecuteFn(ctx, name, args)
}
