package chatter_test

import (
	"encoding/json"
	"testing"
	"time"

	"chatter"

	"github.com/stretchr/testify/assert"
)

func TestMessage_Role(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		msg  chatter.Message
		want chatter.Role
	}{
		{"UserMessage", chatter.UserMessage{}, chatter.RoleUser},
		{"AssistantMessage", chatter.AssistantMessage{}, chatter.RoleAssistant},
		{"ToolResultMessage", chatter.ToolResultMessage{}, chatter.RoleToolResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.msg.Role())
		})
	}
}

func TestMessageTypeSwitch_Exhaustive(t *testing.T) {
	t.Parallel()
	messages := []chatter.Message{
		chatter.UserMessage{Content: []chatter.ContentBlock{chatter.TextBlock{Text: "hello"}}},
		chatter.AssistantMessage{Content: []chatter.ContentBlock{chatter.TextBlock{Text: "hi"}}},
		chatter.ToolResultMessage{ToolCallID: "tc_1", ToolName: "web_search"},
	}
	for _, msg := range messages {
		switch msg.(type) {
		case chatter.UserMessage:
		case chatter.AssistantMessage:
		case chatter.ToolResultMessage:
		default:
			t.Fatalf("unexpected message type: %T", msg)
		}
	}
}

func TestAssistantMessage_Text(t *testing.T) {
	t.Parallel()
	msg := chatter.AssistantMessage{
		Content: []chatter.ContentBlock{
			chatter.ThinkingBlock{Thinking: "reasoning..."},
			chatter.TextBlock{Text: "first"},
			chatter.ToolCallBlock{ID: "tc_1", Name: "web_search", Arguments: json.RawMessage(`{}`)},
			chatter.TextBlock{Text: "second"},
		},
		Timestamp: time.Now(),
	}
	assert.Equal(t, "first\nsecond", msg.Text())
}

func TestAssistantMessage_Text_Empty(t *testing.T) {
	t.Parallel()
	msg := chatter.AssistantMessage{
		Content: []chatter.ContentBlock{chatter.ThinkingBlock{Thinking: "only thoughts"}},
	}
	assert.Equal(t, "", msg.Text())
}

func TestAssistantMessage_ToolCalls(t *testing.T) {
	t.Parallel()
	first := chatter.ToolCallBlock{ID: "tc_1", Name: "web_search", Arguments: json.RawMessage(`{"query":"a"}`)}
	second := chatter.ToolCallBlock{ID: "tc_2", Name: "web_search", Arguments: json.RawMessage(`{"query":"b"}`)}
	msg := chatter.AssistantMessage{
		Content: []chatter.ContentBlock{
			chatter.TextBlock{Text: "let me check"},
			first,
			second,
		},
	}
	assert.Equal(t, []chatter.ToolCallBlock{first, second}, msg.ToolCalls())
}

func TestAssistantMessage_ToolCalls_None(t *testing.T) {
	t.Parallel()
	msg := chatter.AssistantMessage{
		Content: []chatter.ContentBlock{chatter.TextBlock{Text: "plain answer"}},
	}
	assert.Nil(t, msg.ToolCalls())
}

func TestContentBlockTypeSwitch_Exhaustive(t *testing.T) {
	t.Parallel()
	blocks := []chatter.ContentBlock{
		chatter.TextBlock{Text: "hello"},
		chatter.ThinkingBlock{Thinking: "reasoning"},
		chatter.ToolCallBlock{ID: "tc_1", Name: "web_search", Arguments: json.RawMessage(`{}`)},
	}
	for _, block := range blocks {
		switch block.(type) {
		case chatter.TextBlock:
		case chatter.ThinkingBlock:
		case chatter.ToolCallBlock:
		default:
			t.Fatalf("unexpected content block type: %T", block)
		}
	}
}
