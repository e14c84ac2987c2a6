package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chatter"
	"chatter/logger"

	"google.golang.org/genai"
)

// Interface compliance check.
var _ chatter.Provider = (*Client)(nil)

// Client implements [chatter.Provider] for the Google Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-2.5-pro.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the per-request HTTP timeout. Default is 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		model:   defaultModel,
		timeout: requestTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: c.timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c.client = gc
	return c, nil
}

// Generate sends a blocking request to the Gemini API and returns the
// assembled assistant message. A transient failure (network error or 5xx)
// is retried once after a short pause.
func (c *Client) Generate(ctx context.Context, req chatter.Request) (chatter.AssistantMessage, error) {
	if err := req.Validate(); err != nil {
		return chatter.AssistantMessage{}, err
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	contents := ConvertMessages(req.Messages)
	config := buildConfig(req)

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil && retryable(err) && ctx.Err() == nil {
		logger.Warn("transient gemini failure, retrying once", "error", err)
		select {
		case <-ctx.Done():
			return chatter.AssistantMessage{}, ctx.Err()
		case <-time.After(retryPause):
		}
		resp, err = c.client.Models.GenerateContent(ctx, model, contents, config)
	}
	if err != nil {
		return chatter.AssistantMessage{}, fmt.Errorf("gemini: %w", err)
	}

	msg, err := convertResponse(resp)
	if err != nil {
		return chatter.AssistantMessage{}, err
	}
	logger.Debug("gemini response",
		"model", model,
		"stop_reason", msg.StopReason,
		"input_tokens", msg.Usage.InputTokens,
		"output_tokens", msg.Usage.OutputTokens)
	return msg, nil
}

// retryable reports whether the error is worth a single retry: transport
// errors and server-side (5xx) API errors. Client errors (auth, quota,
// malformed request) are surfaced immediately.
func retryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500
	}
	return true
}

func buildConfig(req chatter.Request) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
		Tools:           ConvertTools(req.Tools),
	}

	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}

	return config
}

// ConvertMessages converts chatter Messages to genai Contents.
// Exported for testing.
func ConvertMessages(msgs []chatter.Message) []*genai.Content {
	var result []*genai.Content
	for _, msg := range msgs {
		switch m := msg.(type) {
		case chatter.UserMessage:
			result = append(result, &genai.Content{
				Role:  "user",
				Parts: convertParts(m.Content),
			})
		case chatter.AssistantMessage:
			result = append(result, &genai.Content{
				Role:  "model",
				Parts: convertParts(m.Content),
			})
		case chatter.ToolResultMessage:
			text := extractText(m.Content)
			var responseMap map[string]any
			if m.IsError {
				responseMap = map[string]any{"error": text}
			} else {
				responseMap = map[string]any{"output": text}
			}
			result = append(result, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						ID:       m.ToolCallID,
						Name:     m.ToolName,
						Response: responseMap,
					},
				}},
			})
		}
	}
	return result
}

func convertParts(blocks []chatter.ContentBlock) []*genai.Part {
	var parts []*genai.Part
	for _, b := range blocks {
		switch bl := b.(type) {
		case chatter.TextBlock:
			parts = append(parts, &genai.Part{Text: bl.Text})
		case chatter.ThinkingBlock:
			parts = append(parts, &genai.Part{Text: bl.Thinking, Thought: true})
		case chatter.ToolCallBlock:
			// Arguments is json.RawMessage — always valid JSON from domain types.
			var args map[string]any
			_ = json.Unmarshal(bl.Arguments, &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   bl.ID,
					Name: bl.Name,
					Args: args,
				},
			})
		}
	}
	return parts
}

// extractText returns the text of the first TextBlock, or empty string if none.
func extractText(blocks []chatter.ContentBlock) string {
	for _, b := range blocks {
		if tb, ok := b.(chatter.TextBlock); ok {
			return tb.Text
		}
	}
	return ""
}

// ConvertTools converts chatter Tools to genai Tools.
// Exported for testing.
func ConvertTools(tools []chatter.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		// Parameters is json.RawMessage — always valid JSON from domain types.
		var schema map[string]any
		_ = json.Unmarshal(t.Parameters, &schema)
		decls[i] = &genai.FunctionDeclaration{
			Name:                 t.Name,
			Description:          t.Description,
			ParametersJsonSchema: schema,
		}
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// convertResponse assembles the domain message from the API response.
func convertResponse(resp *genai.GenerateContentResponse) (chatter.AssistantMessage, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return chatter.AssistantMessage{}, fmt.Errorf("gemini: empty response")
	}
	cand := resp.Candidates[0]

	var blocks []chatter.ContentBlock
	if cand.Content != nil {
		callSeq := 0
		for _, p := range cand.Content.Parts {
			switch {
			case p.FunctionCall != nil:
				args, err := json.Marshal(p.FunctionCall.Args)
				if err != nil {
					return chatter.AssistantMessage{}, fmt.Errorf("gemini: marshal tool args: %w", err)
				}
				callSeq++
				id := p.FunctionCall.ID
				if id == "" {
					// The API omits call IDs; synthesize one so tool
					// results can be matched back to their calls.
					id = fmt.Sprintf("call_%d", callSeq)
				}
				blocks = append(blocks, chatter.ToolCallBlock{
					ID:        id,
					Name:      p.FunctionCall.Name,
					Arguments: args,
				})
			case p.Thought:
				blocks = append(blocks, chatter.ThinkingBlock{Thinking: p.Text})
			case p.Text != "":
				blocks = append(blocks, chatter.TextBlock{Text: p.Text})
			}
		}
	}

	msg := chatter.AssistantMessage{
		Content:       blocks,
		StopReason:    convertFinishReason(cand.FinishReason, blocks),
		RawStopReason: string(cand.FinishReason),
		Usage:         convertUsage(resp.UsageMetadata),
		Timestamp:     time.Now(),
	}
	return msg, nil
}

// convertFinishReason maps the API finish reason to a domain StopReason.
// A reply containing function calls is StopToolUse regardless of the raw
// reason, since the API reports STOP for tool turns.
func convertFinishReason(reason genai.FinishReason, blocks []chatter.ContentBlock) chatter.StopReason {
	for _, b := range blocks {
		if _, ok := b.(chatter.ToolCallBlock); ok {
			return chatter.StopToolUse
		}
	}
	switch reason {
	case genai.FinishReasonStop:
		return chatter.StopEndTurn
	case genai.FinishReasonMaxTokens:
		return chatter.StopLength
	case "":
		return chatter.StopUnknown
	default:
		return chatter.StopError
	}
}

// convertUsage normalizes usage metadata. Gemini reports the cached share
// inside the prompt count, so non-cached input is the difference, clamped
// to zero.
func convertUsage(u *genai.GenerateContentResponseUsageMetadata) chatter.Usage {
	if u == nil {
		return chatter.Usage{}
	}
	input := int(u.PromptTokenCount) - int(u.CachedContentTokenCount)
	if input < 0 {
		input = 0
	}
	return chatter.Usage{
		InputTokens:     input,
		OutputTokens:    int(u.CandidatesTokenCount),
		CacheReadTokens: int(u.CachedContentTokenCount),
	}
}
