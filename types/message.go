package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ToolCall represents a tool invocation request produced by an agent.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Message is one agent utterance in a conversation. A message is produced by
// exactly one agent turn and is never mutated after it has been appended to
// history. Content is nil when the turn carried no text (tool-call only).
type Message struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Content   *string    `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Timestamp time.Time  `json:"timestamp,omitempty"`
}

// NewMessage creates a new message from the given source agent.
func NewMessage(source, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Source:    source,
		Content:   &content,
		Timestamp: time.Now(),
	}
}

// NewToolCallMessage creates a message that carries only tool calls.
func NewToolCallMessage(source string, calls []ToolCall) Message {
	return Message{
		ID:        uuid.New().String(),
		Source:    source,
		ToolCalls: calls,
		Timestamp: time.Now(),
	}
}

// WithToolCalls adds tool calls to the message.
func (m Message) WithToolCalls(calls []ToolCall) Message {
	m.ToolCalls = calls
	return m
}

// Text returns the message content, or the empty string when Content is nil.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}
