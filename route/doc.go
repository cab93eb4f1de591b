// Package route implements self-directed conversation routing: agents
// themselves determine conversation flow by stamping a recipient and a
// candidate pool onto the context of each turn, forming a graph walk over a
// fixed agent-adjacency topology.
//
// The protocol is a state machine. The initial state transitions
// deterministically to the first roster agent. Each turn moves from the
// current speaker to a random choice among its offered candidates, or to the
// terminal state the instant a turn nominates no recipient. Candidates for
// the turn after the recipient's are the recipient's own neighbors.
package route
