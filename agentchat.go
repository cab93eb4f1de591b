// Package agentchat provides a top-level convenience entry point for
// assembling a self-directed group chat from configuration with minimal
// boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/agentchat"
//
//	cfg, err := config.Load("config.yaml")
//	gc, err := agentchat.NewSelfDirectedChat(cfg)
//	for !gc.Done() {
//		msg, err := gc.Step(ctx)
//		...
//	}
package agentchat

import (
	"go.uber.org/zap"

	"github.com/BaSui01/agentchat/assistant"
	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/config"
	"github.com/BaSui01/agentchat/llm"
	"github.com/BaSui01/agentchat/route"
)

// Option configures the chat assembled by [NewSelfDirectedChat].
type Option func(*builder)

type builder struct {
	logger   *zap.Logger
	metrics  *chat.Metrics
	provider llm.Provider
}

// WithLogger sets the logger used by every assembled component.
func WithLogger(logger *zap.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics wires Prometheus metrics into the orchestrator.
func WithMetrics(m *chat.Metrics) Option {
	return func(b *builder) { b.metrics = m }
}

// WithProvider replaces the configured reply backend, e.g. with a stub.
func WithProvider(p llm.Provider) Option {
	return func(b *builder) { b.provider = p }
}

// NewSelfDirectedChat assembles a group chat with self-directed routing from
// configuration: one assistant per roster entry wrapped in a routing
// decorator over the declared neighbor topology, the self-directed policy
// pair, and the optional max-turns / token-budget safety caps composed in.
func NewSelfDirectedChat(cfg *config.Config, opts ...Option) (*chat.GroupChat, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &builder{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}

	provider := b.provider
	if provider == nil {
		provider = llm.NewOpenAICompat(llm.Config{
			ProviderName: cfg.Provider.Name,
			APIKey:       cfg.Provider.APIKey,
			BaseURL:      cfg.Provider.BaseURL,
			DefaultModel: cfg.Provider.Model,
			Timeout:      cfg.Provider.Timeout,
		}, b.logger)
	}

	topology, err := route.NewTopology(cfg.Neighbors())
	if err != nil {
		return nil, err
	}

	chooser := route.NewChooser()
	if cfg.Chat.Seed != 0 {
		chooser = route.NewRandChooser(cfg.Chat.Seed)
	}

	agents := make([]chat.Agent, 0, len(cfg.Agents))
	for _, ac := range cfg.Agents {
		inner, err := assistant.New(ac.Name, provider,
			assistant.WithDescription(ac.Description),
			assistant.WithSystemPrompt(ac.SystemPrompt),
			assistant.WithModel(cfg.Provider.Model),
			assistant.WithLogger(b.logger),
		)
		if err != nil {
			return nil, err
		}
		routed, err := route.NewAgent(inner, topology,
			route.WithChooser(chooser),
			route.WithLogger(b.logger),
		)
		if err != nil {
			return nil, err
		}
		agents = append(agents, routed)
	}

	termination := buildTermination(cfg)

	chatOpts := []chat.Option{chat.WithLogger(b.logger)}
	if b.metrics != nil {
		chatOpts = append(chatOpts, chat.WithMetrics(b.metrics))
	}
	if cfg.Chat.SendIntroduction {
		chatOpts = append(chatOpts, chat.WithIntroduction())
	}
	return chat.New(agents, route.NewSelection(), termination, chatOpts...)
}

func buildTermination(cfg *config.Config) chat.Termination {
	policies := []chat.Termination{route.NewTermination()}
	if cfg.Chat.MaxTurns > 0 {
		policies = append(policies, chat.NewMaxTurnsTermination(cfg.Chat.MaxTurns))
	}
	if cfg.Chat.TokenBudget > 0 {
		policies = append(policies, chat.NewTokenBudgetTermination(cfg.Chat.TokenBudget,
			llm.NewTiktokenTokenizer(cfg.Provider.Model)))
	}
	if len(policies) == 1 {
		return policies[0]
	}
	return chat.NewCompositeTermination(policies...)
}
