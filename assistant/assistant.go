// Package assistant provides the inner reply-producing agent: a named
// participant with a system prompt that delegates text generation to an
// llm.Provider. Routing behavior is layered on top by route.Agent.
package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/llm"
	"github.com/BaSui01/agentchat/types"
)

// Agent is a conversation participant backed by an LLM provider.
type Agent struct {
	name         string
	description  string
	systemPrompt string
	model        string
	temperature  float32
	maxTokens    int
	provider     llm.Provider
	logger       *zap.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithDescription sets the agent description.
func WithDescription(d string) Option {
	return func(a *Agent) { a.description = d }
}

// WithSystemPrompt sets the system prompt.
func WithSystemPrompt(p string) Option {
	return func(a *Agent) { a.systemPrompt = p }
}

// WithModel overrides the model name.
func WithModel(m string) Option {
	return func(a *Agent) { a.model = m }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(a *Agent) { a.temperature = t }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(a *Agent) { a.maxTokens = n }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an assistant agent. Name and provider are required.
func New(name string, provider llm.Provider, opts ...Option) (*Agent, error) {
	if name == "" {
		return nil, types.NewError(types.ErrCodeInvalidConfig, "agent name is required")
	}
	if provider == nil {
		return nil, types.NewError(types.ErrCodeInvalidConfig, "reply provider is required")
	}
	a := &Agent{
		name:     name,
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(zap.String("component", "assistant"), zap.String("agent", name))
	return a, nil
}

// Name returns the agent's identity.
func (a *Agent) Name() string { return a.name }

// Description returns the agent's description.
func (a *Agent) Description() string { return a.description }

// GenerateReply builds the prompt from the history transcript and delegates
// to the provider. Provider failures are wrapped as BACKEND errors and never
// retried here.
func (a *Agent) GenerateReply(ctx context.Context, history chat.HistoryView) (types.Message, types.TurnContext, error) {
	req := &llm.ChatRequest{
		Model:       a.model,
		Messages:    a.buildPrompt(history),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}

	resp, err := a.provider.Complete(ctx, req)
	if err != nil {
		return types.Message{}, types.TurnContext{},
			types.NewError(types.ErrCodeBackend, fmt.Sprintf("reply backend %s failed", a.provider.Name())).WithCause(err)
	}

	msg := types.NewMessage(a.name, resp.Content)
	tctx := types.TurnContext{Metadata: map[string]any{
		"model": resp.Model,
		"usage": resp.Usage,
	}}
	return msg, tctx, nil
}

// buildPrompt maps the transcript into provider roles: this agent's own turns
// become assistant messages, everyone else's become user messages attributed
// by source name.
func (a *Agent) buildPrompt(history chat.HistoryView) []llm.ChatMessage {
	var msgs []llm.ChatMessage
	if a.systemPrompt != "" {
		msgs = append(msgs, llm.ChatMessage{Role: llm.RoleSystem, Content: a.systemPrompt})
	}
	for _, m := range history.Messages() {
		role := llm.RoleUser
		if m.Source == a.name {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.ChatMessage{
			Role:    role,
			Content: m.Text(),
			Name:    m.Source,
		})
	}
	return msgs
}
