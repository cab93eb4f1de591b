// Package chat provides turn-based group-chat orchestration: an append-only
// conversation history, the speaker-selection and termination policy
// contracts, and the GroupChat driver that ties them together.
//
// The driver is policy-agnostic. On each step it asks the speaker-selection
// policy for the next agent, invokes that agent's GenerateReply, appends the
// resulting (message, context) pair to history, and asks the termination
// policy for a verdict. Concrete policies live alongside (round-robin,
// max-turns, token-budget) or in the route package (self-directed routing).
package chat
