package chat

import "github.com/BaSui01/agentchat/types"

// SpeakerSelection chooses the agent that takes the next turn. The returned
// hint is free-form guidance for the chosen speaker (may be empty); the
// orchestrator logs it but does not interpret it.
type SpeakerSelection interface {
	SelectSpeaker(agents []Agent, history HistoryView) (Agent, string, error)
}

// RoundRobinSelection selects agents in roster order. The position is derived
// from the history length, so the policy is stateless and re-derivable.
type RoundRobinSelection struct{}

// SelectSpeaker returns the agent at history-length modulo roster size.
func (RoundRobinSelection) SelectSpeaker(agents []Agent, history HistoryView) (Agent, string, error) {
	if len(agents) == 0 {
		return nil, "", types.NewError(types.ErrCodeInvalidConfig, "no agents available")
	}
	return agents[history.Len()%len(agents)], "", nil
}
