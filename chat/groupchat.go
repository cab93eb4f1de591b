package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/agentchat/types"
)

const introductionSource = "system"

// GroupChat drives one conversation: it holds the agent roster, the
// speaker-selection and termination policies, and the only mutable handle on
// the history. Stepping is strictly sequential; at most one agent's
// GenerateReply is in flight at a time.
type GroupChat struct {
	id          string
	agents      []Agent
	selection   SpeakerSelection
	termination Termination
	history     *History

	mu        sync.RWMutex
	done      bool
	introSent bool

	sendIntroduction bool
	logger           *zap.Logger
	tracer           trace.Tracer
	metrics          *Metrics
}

// Option configures a GroupChat.
type Option func(*GroupChat)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *GroupChat) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics wires Prometheus metrics into the step loop.
func WithMetrics(m *Metrics) Option {
	return func(g *GroupChat) { g.metrics = m }
}

// WithIntroduction enables a synthesized system turn introducing the roster
// before the first real turn. Self-directed policy pairs expect routing
// metadata on every turn and should leave this disabled.
func WithIntroduction() Option {
	return func(g *GroupChat) { g.sendIntroduction = true }
}

// New creates a group chat over the given roster and policy pair.
func New(agents []Agent, selection SpeakerSelection, termination Termination, opts ...Option) (*GroupChat, error) {
	if len(agents) == 0 {
		return nil, types.NewError(types.ErrCodeInvalidConfig, "group chat needs at least one agent")
	}
	if selection == nil || termination == nil {
		return nil, types.NewError(types.ErrCodeInvalidConfig, "selection and termination policies are required")
	}
	seen := make(map[string]struct{}, len(agents))
	for _, a := range agents {
		if _, dup := seen[a.Name()]; dup {
			return nil, types.NewError(types.ErrCodeInvalidConfig, fmt.Sprintf("duplicate agent name: %s", a.Name()))
		}
		seen[a.Name()] = struct{}{}
	}
	g := &GroupChat{
		id:          uuid.New().String(),
		agents:      agents,
		selection:   selection,
		termination: termination,
		history:     NewHistory(),
		logger:      zap.NewNop(),
		tracer:      otel.Tracer("agentchat/chat"),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(zap.String("component", "group_chat"), zap.String("chat_id", g.id))
	return g, nil
}

// ID returns the conversation identifier.
func (g *GroupChat) ID() string { return g.id }

// Done reports the cached termination verdict. It is re-derivable by
// replaying the termination policy over the stored history.
func (g *GroupChat) Done() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.done
}

// History returns the read-only view of the conversation so far.
func (g *GroupChat) History() HistoryView { return g.history }

// Step runs one turn: select the speaker, invoke it, append the result, and
// re-check termination. It fails with ALREADY_DONE once the conversation has
// terminated. No partial turn is appended when the agent call fails.
func (g *GroupChat) Step(ctx context.Context) (types.Message, error) {
	if g.Done() {
		return types.Message{}, types.NewError(types.ErrCodeAlreadyDone, "conversation already terminated")
	}

	ctx, span := g.tracer.Start(ctx, "chat.step",
		trace.WithAttributes(attribute.Int("chat.turn", g.history.Len())))
	defer span.End()

	g.maybeSendIntroduction()

	start := time.Now()
	speaker, hint, err := g.selection.SelectSpeaker(g.agents, g.history)
	if err != nil {
		g.metrics.observeError()
		return types.Message{}, err
	}
	span.SetAttributes(attribute.String("chat.speaker", speaker.Name()))
	if hint != "" {
		g.logger.Debug("speaker hint", zap.String("speaker", speaker.Name()), zap.String("hint", hint))
	}

	msg, tctx, err := speaker.GenerateReply(ctx, g.history)
	if err != nil {
		g.metrics.observeError()
		g.logger.Warn("agent reply failed", zap.String("speaker", speaker.Name()), zap.Error(err))
		return types.Message{}, err
	}

	g.history.Append(msg, tctx)
	g.termination.RecordTurnTaken(speaker.Name())

	result, err := g.termination.CheckTermination(g.history)
	if err != nil {
		return types.Message{}, err
	}
	g.mu.Lock()
	g.done = result.Terminated
	g.mu.Unlock()

	g.metrics.observeTurn(speaker.Name(), time.Since(start))
	if result.Terminated {
		g.metrics.observeTermination(result.Reason)
		g.logger.Info("conversation terminated",
			zap.String("reason", string(result.Reason)),
			zap.String("explanation", result.Explanation),
			zap.Int("turns", g.history.Len()),
		)
	}

	g.logger.Debug("turn taken",
		zap.String("speaker", speaker.Name()),
		zap.Int("turn", g.history.Len()),
	)
	return msg, nil
}

// Run steps the conversation until it terminates or ctx is cancelled, and
// returns the messages produced.
func (g *GroupChat) Run(ctx context.Context) ([]types.Message, error) {
	var msgs []types.Message
	for !g.Done() {
		if err := ctx.Err(); err != nil {
			return msgs, err
		}
		msg, err := g.Step(ctx)
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Reset restarts the conversation from empty history with the same roster and
// policy instances.
func (g *GroupChat) Reset() {
	g.mu.Lock()
	g.done = false
	g.introSent = false
	g.mu.Unlock()
	g.history.Reset()
	g.termination.Reset()
}

// maybeSendIntroduction appends the synthesized roster introduction before
// the first real turn when enabled.
func (g *GroupChat) maybeSendIntroduction() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.sendIntroduction || g.introSent || g.history.Len() > 0 {
		return
	}
	g.introSent = true

	var b strings.Builder
	b.WriteString("Participants in this conversation:\n")
	for _, a := range g.agents {
		fmt.Fprintf(&b, "- %s: %s\n", a.Name(), a.Description())
	}
	msg := types.NewMessage(introductionSource, b.String())
	g.history.Append(msg, types.TurnContext{Metadata: map[string]any{"introduction": true}})
}
