package llm

import (
	"context"

	"github.com/BaSui01/agentchat/types"
)

// Role represents the role of a chat message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one prompt message sent to a provider.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// ChatRequest is a completion request.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a completion result.
type ChatResponse struct {
	ID      string           `json:"id,omitempty"`
	Model   string           `json:"model"`
	Content string           `json:"content"`
	Usage   types.TokenUsage `json:"usage,omitempty"`
}

// Provider is the reply-generation backend capability.
type Provider interface {
	// Name returns the provider's identifier.
	Name() string
	// Complete produces one completion for the given prompt messages.
	Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
