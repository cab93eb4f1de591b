package chat

import (
	"context"

	"github.com/BaSui01/agentchat/types"
)

// Agent is the capability set the orchestrator requires of a participant:
// an identity and the ability to produce one turn from the history so far.
//
// GenerateReply may suspend on a long-latency reply backend; the orchestrator
// awaits one agent fully before invoking the next. An error return aborts the
// current step without appending anything, so the backend failure is
// propagated verbatim and the history stays consistent for a retry.
type Agent interface {
	// Name returns the agent's identity, immutable for the conversation.
	Name() string
	// Description returns a human-readable description of the agent.
	Description() string
	// GenerateReply produces this agent's turn given the history so far.
	GenerateReply(ctx context.Context, history HistoryView) (types.Message, types.TurnContext, error)
}
