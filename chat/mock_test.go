package chat

import (
	"context"

	"github.com/BaSui01/agentchat/types"
)

// stubAgent is a scripted chat participant for orchestrator tests.
type stubAgent struct {
	name string
	gen  func(ctx context.Context, history HistoryView) (types.Message, types.TurnContext, error)
}

func newStubAgent(name string, gen func(ctx context.Context, history HistoryView) (types.Message, types.TurnContext, error)) *stubAgent {
	return &stubAgent{name: name, gen: gen}
}

func (a *stubAgent) Name() string        { return a.name }
func (a *stubAgent) Description() string { return "stub agent " + a.name }

func (a *stubAgent) GenerateReply(ctx context.Context, history HistoryView) (types.Message, types.TurnContext, error) {
	if a.gen != nil {
		return a.gen(ctx, history)
	}
	return types.NewMessage(a.name, "reply from "+a.name), types.TurnContext{}, nil
}

// lenTermination terminates once the history reaches a fixed length.
type lenTermination struct {
	limit int
}

func (t *lenTermination) RecordTurnTaken(string) {}

func (t *lenTermination) CheckTermination(history HistoryView) (TerminationResult, error) {
	if history.Len() >= t.limit {
		return TerminatedResult(ReasonGoalReached, "limit reached"), nil
	}
	return NotTerminated(), nil
}

func (t *lenTermination) Reset() {}
