package chatter_test

import (
	"testing"

	"chatter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestRequest_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		req     chatter.Request
		wantErr bool
	}{
		{"zero value", chatter.Request{}, false},
		{"valid temperature", chatter.Request{Temperature: floatPtr(0.2)}, false},
		{"temperature at upper bound", chatter.Request{Temperature: floatPtr(2)}, false},
		{"temperature too low", chatter.Request{Temperature: floatPtr(-0.1)}, true},
		{"temperature too high", chatter.Request{Temperature: floatPtr(2.1)}, true},
		{"valid max tokens", chatter.Request{MaxTokens: 4096}, false},
		{"negative max tokens", chatter.Request{MaxTokens: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, chatter.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		msg     chatter.Message
		wantErr bool
	}{
		{
			"user text",
			chatter.UserMessage{Content: []chatter.ContentBlock{chatter.TextBlock{Text: "hi"}}},
			false,
		},
		{
			"user with tool call",
			chatter.UserMessage{Content: []chatter.ContentBlock{chatter.ToolCallBlock{Name: "web_search"}}},
			true,
		},
		{
			"user with thinking",
			chatter.UserMessage{Content: []chatter.ContentBlock{chatter.ThinkingBlock{Thinking: "hm"}}},
			true,
		},
		{
			"assistant with text, thinking and tool call",
			chatter.AssistantMessage{Content: []chatter.ContentBlock{
				chatter.ThinkingBlock{Thinking: "hm"},
				chatter.TextBlock{Text: "checking"},
				chatter.ToolCallBlock{Name: "web_search"},
			}},
			false,
		},
		{
			"tool result text",
			chatter.ToolResultMessage{Content: []chatter.ContentBlock{chatter.TextBlock{Text: "results"}}},
			false,
		},
		{
			"tool result with tool call",
			chatter.ToolResultMessage{Content: []chatter.ContentBlock{chatter.ToolCallBlock{Name: "web_search"}}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := chatter.ValidateMessage(tt.msg)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, chatter.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
