package route

import (
	"fmt"

	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/types"
)

// Termination is the self-directed termination policy: a conversation is over
// the instant the last turn nominated no recipient. It is a pure function of
// history and keeps no per-agent state.
type Termination struct{}

// NewTermination creates the self-directed termination policy.
func NewTermination() *Termination { return &Termination{} }

// RecordTurnTaken is a no-op; the policy is stateless.
func (*Termination) RecordTurnTaken(string) {}

// CheckTermination returns a terminal verdict iff the last entry's routing
// recipient is absent. An empty history never terminates: a conversation
// needs at least one turn before it can end.
func (*Termination) CheckTermination(history chat.HistoryView) (chat.TerminationResult, error) {
	if history.Len() == 0 {
		return chat.NotTerminated(), nil
	}
	last, err := history.Last()
	if err != nil {
		return chat.NotTerminated(), err
	}
	if last.Context.Routing == nil {
		return chat.NotTerminated(), types.NewError(types.ErrCodeInvariantViolation,
			fmt.Sprintf("turn from %q carries no routing extension", last.Message.Source))
	}
	if !last.Context.Routing.HasRecipient() {
		return chat.TerminatedResult(chat.ReasonGoalReached, "No recipient"), nil
	}
	return chat.NotTerminated(), nil
}

// Reset is a no-op.
func (*Termination) Reset() {}

// Selection is the self-directed speaker-selection policy: the walk is seeded
// with the first roster agent, then each turn's nominated recipient speaks
// next. The policy never consults the candidate pool; that is surfaced only
// to the elected agent itself on its next GenerateReply.
type Selection struct{}

// NewSelection creates the self-directed speaker-selection policy.
func NewSelection() *Selection { return &Selection{} }

// SelectSpeaker returns the previous turn's recipient, or the first roster
// agent on empty history. A missing recipient reaching this call means the
// termination/selection pairing is broken: the caller should have observed
// termination already.
func (*Selection) SelectSpeaker(agents []chat.Agent, history chat.HistoryView) (chat.Agent, string, error) {
	if len(agents) == 0 {
		return nil, "", types.NewError(types.ErrCodeInvalidConfig, "no agents available")
	}
	if history.Len() == 0 {
		return agents[0], "", nil
	}
	last, err := history.Last()
	if err != nil {
		return nil, "", err
	}
	if last.Context.Routing == nil || !last.Context.Routing.HasRecipient() {
		return nil, "", types.NewError(types.ErrCodeInvariantViolation, "should have terminated already")
	}
	name := last.Context.Routing.RecipientName()
	for _, a := range agents {
		if a.Name() == name {
			return a, "", nil
		}
	}
	return nil, "", types.NewError(types.ErrCodeInvariantViolation,
		fmt.Sprintf("nominated recipient %q is not in the roster", name))
}
