package gemini_test

import (
	"encoding/json"
	"errors"
	"testing"

	"chatter"
	"chatter/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestConvertMessages(t *testing.T) {
	t.Parallel()

	msgs := []chatter.Message{
		chatter.UserMessage{Content: []chatter.ContentBlock{chatter.TextBlock{Text: "what's the weather?"}}},
		chatter.AssistantMessage{Content: []chatter.ContentBlock{
			chatter.ToolCallBlock{ID: "call_1", Name: "web_search", Arguments: json.RawMessage(`{"query":"Tokyo weather"}`)},
		}},
		chatter.ToolResultMessage{
			ToolCallID: "call_1",
			ToolName:   "web_search",
			Content:    []chatter.ContentBlock{chatter.TextBlock{Text: "rain, 18C"}},
		},
	}

	contents := gemini.ConvertMessages(msgs)
	require.Len(t, contents, 3)

	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "what's the weather?", contents[0].Parts[0].Text)

	assert.Equal(t, "model", contents[1].Role)
	fc := contents[1].Parts[0].FunctionCall
	require.NotNil(t, fc)
	assert.Equal(t, "web_search", fc.Name)
	assert.Equal(t, map[string]any{"query": "Tokyo weather"}, fc.Args)

	assert.Equal(t, "user", contents[2].Role)
	fr := contents[2].Parts[0].FunctionResponse
	require.NotNil(t, fr)
	assert.Equal(t, "web_search", fr.Name)
	assert.Equal(t, map[string]any{"output": "rain, 18C"}, fr.Response)
}

func TestConvertMessages_ErrorToolResult(t *testing.T) {
	t.Parallel()

	msgs := []chatter.Message{
		chatter.ToolResultMessage{
			ToolCallID: "call_1",
			ToolName:   "web_search",
			Content:    []chatter.ContentBlock{chatter.TextBlock{Text: "web search failed: quota exceeded"}},
			IsError:    true,
		},
	}

	contents := gemini.ConvertMessages(msgs)
	require.Len(t, contents, 1)
	fr := contents[0].Parts[0].FunctionResponse
	require.NotNil(t, fr)
	assert.Equal(t, map[string]any{"error": "web search failed: quota exceeded"}, fr.Response)
}

func TestConvertTools(t *testing.T) {
	t.Parallel()

	tools := []chatter.Tool{{
		Name:        "web_search",
		Description: "Search the web for current information.",
		Parameters:  json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`),
	}}

	converted := gemini.ConvertTools(tools)
	require.Len(t, converted, 1)
	require.Len(t, converted[0].FunctionDeclarations, 1)
	decl := converted[0].FunctionDeclarations[0]
	assert.Equal(t, "web_search", decl.Name)
	schema, ok := decl.ParametersJsonSchema.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
}

func TestConvertTools_Empty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, gemini.ConvertTools(nil))
}

func TestConvertResponse(t *testing.T) {
	t.Parallel()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: "model",
				Parts: []*genai.Part{
					{Text: "let me check", Thought: true},
					{Text: "Checking the weather."},
					{FunctionCall: &genai.FunctionCall{Name: "web_search", Args: map[string]any{"query": "Tokyo weather"}}},
				},
			},
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:        120,
			CandidatesTokenCount:    30,
			CachedContentTokenCount: 20,
		},
	}

	msg, err := gemini.ConvertResponse(resp)
	require.NoError(t, err)

	require.Len(t, msg.Content, 3)
	assert.Equal(t, chatter.ThinkingBlock{Thinking: "let me check"}, msg.Content[0])
	assert.Equal(t, chatter.TextBlock{Text: "Checking the weather."}, msg.Content[1])

	tc, ok := msg.Content[2].(chatter.ToolCallBlock)
	require.True(t, ok)
	assert.Equal(t, "web_search", tc.Name)
	assert.NotEmpty(t, tc.ID, "missing call IDs must be synthesized")
	assert.JSONEq(t, `{"query":"Tokyo weather"}`, string(tc.Arguments))

	// Tool call present, so the turn is a tool-use stop.
	assert.Equal(t, chatter.StopToolUse, msg.StopReason)
	assert.Equal(t, chatter.Usage{InputTokens: 100, OutputTokens: 30, CacheReadTokens: 20}, msg.Usage)
}

func TestConvertResponse_Empty(t *testing.T) {
	t.Parallel()
	_, err := gemini.ConvertResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}

func TestConvertFinishReason(t *testing.T) {
	t.Parallel()
	text := []chatter.ContentBlock{chatter.TextBlock{Text: "hi"}}
	tests := []struct {
		name   string
		reason genai.FinishReason
		blocks []chatter.ContentBlock
		want   chatter.StopReason
	}{
		{"stop", genai.FinishReasonStop, text, chatter.StopEndTurn},
		{"max tokens", genai.FinishReasonMaxTokens, text, chatter.StopLength},
		{"missing", "", text, chatter.StopUnknown},
		{"safety", genai.FinishReasonSafety, text, chatter.StopError},
		{"tool call overrides stop", genai.FinishReasonStop,
			[]chatter.ContentBlock{chatter.ToolCallBlock{Name: "web_search"}}, chatter.StopToolUse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gemini.ConvertFinishReason(tt.reason, tt.blocks))
		})
	}
}

func TestConvertUsage_ClampsNegative(t *testing.T) {
	t.Parallel()
	u := gemini.ConvertUsage(&genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:        10,
		CachedContentTokenCount: 15,
	})
	assert.Zero(t, u.InputTokens)
	assert.Equal(t, 15, u.CacheReadTokens)
}

func TestRetryable(t *testing.T) {
	t.Parallel()
	assert.True(t, gemini.Retryable(errors.New("connection reset")))
	assert.True(t, gemini.Retryable(genai.APIError{Code: 503}))
	assert.False(t, gemini.Retryable(genai.APIError{Code: 401}))
	assert.False(t, gemini.Retryable(genai.APIError{Code: 429}))
}
