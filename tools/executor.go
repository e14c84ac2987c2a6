package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"chatter"
)

// Compile-time interface check.
var _ chatter.ToolExecutor = (*Executor)(nil)

// Executor dispatches tool calls through a fixed name-to-tool mapping.
// The mapping is closed at construction time: a name outside it is an
// infrastructure error (chatter.ErrToolNotFound) that aborts the turn,
// never a result fed back to the model.
type Executor struct {
	search *SearchTool
}

// NewExecutor creates the executor over the registered tools.
func NewExecutor(search *SearchTool) *Executor {
	return &Executor{search: search}
}

// Execute dispatches a tool call by name.
func (e *Executor) Execute(ctx context.Context, name string, args json.RawMessage) (*chatter.ToolResult, error) {
	switch name {
	case SearchToolName:
		return e.search.Execute(ctx, args)
	default:
		return nil, fmt.Errorf("%q: %w", name, chatter.ErrToolNotFound)
	}
}

// Definitions returns the schemas for all registered tools.
func (e *Executor) Definitions() []chatter.Tool {
	return []chatter.Tool{e.search.Definition()}
}
