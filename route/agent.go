package route

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/types"
)

// Agent decorates an inner chat.Agent with self-directed routing behavior.
// It never subclasses: the inner agent produces the message, the decorator
// elects the next recipient, suggests the following candidate pool, and
// stamps both onto the turn context. Routing fields always win over metadata
// the inner agent passed forward.
type Agent struct {
	inner    chat.Agent
	topology *Topology
	chooser  Chooser
	logger   *zap.Logger
}

// AgentOption configures a routing Agent.
type AgentOption func(*Agent)

// WithChooser sets the random source used for recipient election.
func WithChooser(c Chooser) AgentOption {
	return func(a *Agent) {
		if c != nil {
			a.chooser = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) AgentOption {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAgent wraps inner with self-directed routing over the given topology.
// The inner agent's name must be a node of the topology.
func NewAgent(inner chat.Agent, topology *Topology, opts ...AgentOption) (*Agent, error) {
	if inner == nil || topology == nil {
		return nil, types.NewError(types.ErrCodeInvalidConfig, "inner agent and topology are required")
	}
	if !topology.Contains(inner.Name()) {
		return nil, types.NewError(types.ErrCodeInvalidConfig,
			fmt.Sprintf("agent %q is not a node of the topology", inner.Name()))
	}
	a := &Agent{
		inner:    inner,
		topology: topology,
		chooser:  NewChooser(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(zap.String("component", "route_agent"), zap.String("agent", inner.Name()))
	return a, nil
}

// Name returns the inner agent's name.
func (a *Agent) Name() string { return a.inner.Name() }

// Description returns the inner agent's description.
func (a *Agent) Description() string { return a.inner.Description() }

// Neighbors returns this agent's static neighbor list.
func (a *Agent) Neighbors() []string { return a.topology.Neighbors(a.inner.Name()) }

// GenerateReply produces one turn. The candidate pool is the previous turn's
// suggested candidates when present, this agent's static neighbors otherwise.
// The inner agent generates the message; the decorator elects the recipient
// from the pool, computes the candidates for the turn after the recipient's,
// and stamps the routing extension.
func (a *Agent) GenerateReply(ctx context.Context, history chat.HistoryView) (types.Message, types.TurnContext, error) {
	pool := a.candidatePool(history)

	msg, innerCtx, err := a.inner.GenerateReply(ctx, history)
	if err != nil {
		return types.Message{}, types.TurnContext{}, err
	}

	tctx := types.TurnContext{}
	tctx.MergeMetadata(innerCtx.Metadata)

	recipient := a.SelectRecipient(history, pool)
	candidates := a.SuggestCandidates(history, recipient)
	tctx.Routing = &types.RoutingExtension{Recipient: recipient, Candidates: candidates}

	a.logger.Debug("routing stamped",
		zap.Strings("pool", pool),
		zap.String("recipient", routingName(recipient)),
		zap.Strings("candidates", candidates),
	)
	return msg, tctx, nil
}

// SelectRecipient elects who speaks next. A single candidate is returned
// deterministically; an empty pool collapses to none without consulting the
// random source; otherwise the choice is uniform over candidates plus none.
func (a *Agent) SelectRecipient(_ chat.HistoryView, candidates []string) *string {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		name := candidates[0]
		return &name
	}
	idx := a.chooser.Choose(len(candidates) + 1)
	if idx == len(candidates) {
		return nil
	}
	name := candidates[idx]
	return &name
}

// SuggestCandidates computes the pool for the turn after the recipient's:
// the recipient's own neighbors, or the empty set when no recipient was
// nominated.
func (a *Agent) SuggestCandidates(_ chat.HistoryView, recipient *string) []string {
	if recipient == nil {
		return []string{}
	}
	return a.topology.Neighbors(*recipient)
}

func (a *Agent) candidatePool(history chat.HistoryView) []string {
	if history.Len() == 0 {
		return a.Neighbors()
	}
	last, err := history.Last()
	if err != nil {
		return a.Neighbors()
	}
	// Nil-ness decides, not emptiness: an absent suggestion falls back to
	// the static neighbors, an explicitly empty one does not.
	if last.Context.Routing != nil && last.Context.Routing.Candidates != nil {
		return append([]string(nil), last.Context.Routing.Candidates...)
	}
	return a.Neighbors()
}

func routingName(recipient *string) string {
	if recipient == nil {
		return "none"
	}
	return *recipient
}
