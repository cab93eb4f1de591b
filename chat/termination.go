package chat

import (
	"fmt"
	"sync"

	"github.com/BaSui01/agentchat/types"
)

// TerminationReason is the closed enumeration of why a conversation ended.
type TerminationReason string

const (
	ReasonGoalReached TerminationReason = "GOAL_REACHED"
	ReasonMaxTurns    TerminationReason = "MAX_TURNS"
	ReasonTokenBudget TerminationReason = "TOKEN_BUDGET"
	ReasonError       TerminationReason = "ERROR"
)

// TerminationResult is the verdict of a termination policy over a history.
type TerminationResult struct {
	Terminated  bool              `json:"terminated"`
	Reason      TerminationReason `json:"reason,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
}

// TerminatedResult builds a terminal verdict.
func TerminatedResult(reason TerminationReason, explanation string) TerminationResult {
	return TerminationResult{Terminated: true, Reason: reason, Explanation: explanation}
}

// NotTerminated builds a non-terminal verdict.
func NotTerminated() TerminationResult {
	return TerminationResult{}
}

// Termination decides when a conversation is over.
//
// CheckTermination must be a pure function of history: the orchestrator's
// cached done flag is re-derivable by replaying the policy over the stored
// history. RecordTurnTaken is the side-effecting hook for policies that count
// turns per agent; stateless policies implement it as a no-op. Reset clears
// internal counters when a conversation restarts from empty history.
type Termination interface {
	RecordTurnTaken(agentName string)
	CheckTermination(history HistoryView) (TerminationResult, error)
	Reset()
}

// MaxTurnsTermination ends the conversation after a fixed number of turns.
type MaxTurnsTermination struct {
	mu       sync.Mutex
	maxTurns int
	taken    int
}

// NewMaxTurnsTermination creates a policy that terminates after maxTurns turns.
func NewMaxTurnsTermination(maxTurns int) *MaxTurnsTermination {
	return &MaxTurnsTermination{maxTurns: maxTurns}
}

// RecordTurnTaken counts one taken turn.
func (t *MaxTurnsTermination) RecordTurnTaken(string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.taken++
}

// CheckTermination terminates once the recorded turn count reaches the limit.
func (t *MaxTurnsTermination) CheckTermination(HistoryView) (TerminationResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.taken >= t.maxTurns {
		return TerminatedResult(ReasonMaxTurns, fmt.Sprintf("reached %d turns", t.maxTurns)), nil
	}
	return NotTerminated(), nil
}

// Reset zeroes the turn counter.
func (t *MaxTurnsTermination) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.taken = 0
}

// TokenBudgetTermination ends the conversation once the token count of the
// whole history exceeds a budget.
type TokenBudgetTermination struct {
	budget    int
	tokenizer types.Tokenizer
}

// NewTokenBudgetTermination creates a policy that terminates when the history
// exceeds budget tokens. A nil tokenizer falls back to estimation.
func NewTokenBudgetTermination(budget int, tokenizer types.Tokenizer) *TokenBudgetTermination {
	if tokenizer == nil {
		tokenizer = types.NewEstimateTokenizer()
	}
	return &TokenBudgetTermination{budget: budget, tokenizer: tokenizer}
}

// RecordTurnTaken is a no-op; the policy is a pure function of history.
func (t *TokenBudgetTermination) RecordTurnTaken(string) {}

// CheckTermination terminates once the history token count exceeds the budget.
func (t *TokenBudgetTermination) CheckTermination(history HistoryView) (TerminationResult, error) {
	used := t.tokenizer.CountMessagesTokens(history.Messages())
	if used > t.budget {
		return TerminatedResult(ReasonTokenBudget, fmt.Sprintf("%d tokens used, budget %d", used, t.budget)), nil
	}
	return NotTerminated(), nil
}

// Reset is a no-op.
func (t *TokenBudgetTermination) Reset() {}

// CompositeTermination combines policies; the first terminal verdict wins.
type CompositeTermination struct {
	policies []Termination
}

// NewCompositeTermination creates a composite over the given policies.
func NewCompositeTermination(policies ...Termination) *CompositeTermination {
	return &CompositeTermination{policies: policies}
}

// RecordTurnTaken forwards to every policy.
func (t *CompositeTermination) RecordTurnTaken(agentName string) {
	for _, p := range t.policies {
		p.RecordTurnTaken(agentName)
	}
}

// CheckTermination returns the first terminal verdict, if any.
func (t *CompositeTermination) CheckTermination(history HistoryView) (TerminationResult, error) {
	for _, p := range t.policies {
		res, err := p.CheckTermination(history)
		if err != nil {
			return NotTerminated(), err
		}
		if res.Terminated {
			return res, nil
		}
	}
	return NotTerminated(), nil
}

// Reset forwards to every policy.
func (t *CompositeTermination) Reset() {
	for _, p := range t.policies {
		p.Reset()
	}
}
