package chatter

import "time"

// Conversation holds the ordered message history for one chat session.
// It lives for the process lifetime only; there is no persistence across
// runs. Messages are append-only during a turn. The agent loop guarantees
// that every tool call in an assistant message is followed by exactly one
// matching ToolResultMessage before the turn's final assistant message.
type Conversation struct {
	Messages     []Message
	SystemPrompt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewConversation creates an empty conversation with the given system prompt.
func NewConversation(systemPrompt string) *Conversation {
	now := time.Now()
	return &Conversation{
		SystemPrompt: systemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Append adds messages to the conversation and bumps UpdatedAt.
func (c *Conversation) Append(msgs ...Message) {
	c.Messages = append(c.Messages, msgs...)
	c.UpdatedAt = time.Now()
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.Messages) }

// Truncate drops all messages after index n. The agent loop uses it to
// roll back a failed turn to the state before the user message.
func (c *Conversation) Truncate(n int) {
	if n < 0 || n >= len(c.Messages) {
		return
	}
	c.Messages = c.Messages[:n]
	c.UpdatedAt = time.Now()
}

// Clear removes all messages. The system prompt is kept.
func (c *Conversation) Clear() {
	c.Messages = nil
	c.UpdatedAt = time.Now()
}
