// Package agent orchestrates the conversation loop between a Provider and a ToolExecutor.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chatter"
	"chatter/logger"
)

// DefaultMaxToolRounds bounds the number of provider calls in a single turn.
// A model that keeps requesting tools past this bound ends the turn with
// chatter.ErrTurnLimit instead of looping forever.
const DefaultMaxToolRounds = 8

// Loop resolves user turns against a Provider, dispatching tool calls
// through a ToolExecutor until the assistant produces a final answer.
type Loop struct {
	provider chatter.Provider
	executor chatter.ToolExecutor
}

// New creates a new Loop with the given provider and tool executor.
func New(provider chatter.Provider, executor chatter.ToolExecutor) *Loop {
	return &Loop{provider: provider, executor: executor}
}

// Option configures a single Respond invocation.
type Option func(*config)

type config struct {
	model         string
	maxTokens     int
	temperature   *float64
	maxToolRounds int
	onToolCall    func(name string, args json.RawMessage)
}

// WithModel sets the model ID for provider requests during this turn.
// Empty string means the provider uses its default model.
func WithModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithMaxTokens caps the provider's output length. Zero means provider default.
func WithMaxTokens(n int) Option {
	return func(c *config) { c.maxTokens = n }
}

// WithTemperature sets the sampling temperature. Nil means provider default.
func WithTemperature(t *float64) Option {
	return func(c *config) { c.temperature = t }
}

// WithMaxToolRounds overrides DefaultMaxToolRounds for this turn.
func WithMaxToolRounds(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxToolRounds = n
		}
	}
}

// WithToolCallHook sets a callback invoked before each tool execution.
// The REPL uses it to surface tool activity to the user.
func WithToolCallHook(h func(name string, args json.RawMessage)) Option {
	return func(c *config) { c.onToolCall = h }
}

// Respond resolves one user turn. It appends the user message, then
// alternates between provider calls and tool executions until the
// assistant answers without requesting a tool, and returns the answer
// text.
//
// On any failure the conversation is rolled back to its state before the
// user message: a failed turn never leaves a dangling tool call or a user
// message without an assistant reply. Provider failures are wrapped in
// chatter.ErrModelUnavailable; an unknown tool name surfaces the
// executor's chatter.ErrToolNotFound; exceeding the round bound returns
// chatter.ErrTurnLimit.
func (l *Loop) Respond(ctx context.Context, conv *chatter.Conversation, userText string, tools []chatter.Tool, opts ...Option) (string, error) {
	if strings.TrimSpace(userText) == "" {
		return "", fmt.Errorf("empty user text: %w", chatter.ErrValidation)
	}

	cfg := config{maxToolRounds: DefaultMaxToolRounds}
	for _, opt := range opts {
		opt(&cfg)
	}

	mark := conv.Len()
	conv.Append(chatter.UserMessage{
		Content:   []chatter.ContentBlock{chatter.TextBlock{Text: userText}},
		Timestamp: time.Now(),
	})

	for round := 0; ; round++ {
		if round >= cfg.maxToolRounds {
			conv.Truncate(mark)
			return "", fmt.Errorf("turn aborted after %d rounds: %w", cfg.maxToolRounds, chatter.ErrTurnLimit)
		}
		if err := ctx.Err(); err != nil {
			conv.Truncate(mark)
			return "", err
		}

		req := chatter.Request{
			Model:        cfg.model,
			SystemPrompt: conv.SystemPrompt,
			Messages:     conv.Messages,
			Tools:        tools,
			MaxTokens:    cfg.maxTokens,
			Temperature:  cfg.temperature,
		}

		msg, err := l.provider.Generate(ctx, req)
		if err != nil {
			conv.Truncate(mark)
			return "", fmt.Errorf("%w: %w", chatter.ErrModelUnavailable, err)
		}
		conv.Append(msg)

		calls := msg.ToolCalls()
		if len(calls) == 0 {
			logger.Debug("turn complete", "rounds", round+1, "stop_reason", msg.StopReason)
			return msg.Text(), nil
		}

		for _, tc := range calls {
			if cfg.onToolCall != nil {
				cfg.onToolCall(tc.Name, tc.Arguments)
			}
			logger.Debug("executing tool", "tool", tc.Name, "call_id", tc.ID)

			result, execErr := l.executor.Execute(ctx, tc.Name, tc.Arguments)
			if execErr != nil {
				// Infrastructure failure, including an unregistered tool
				// name. The turn cannot proceed; roll back so no unmatched
				// tool call remains in the conversation.
				conv.Truncate(mark)
				return "", fmt.Errorf("tool %s: %w", tc.Name, execErr)
			}

			conv.Append(chatter.ToolResultMessage{
				ToolCallID: tc.ID,
				ToolName:   tc.Name,
				Content:    result.Content,
				IsError:    result.IsError,
				Timestamp:  time.Now(),
			})
		}
	}
}
