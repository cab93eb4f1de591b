package route

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/types"
)

// Property: for every adjacent pair of turns in a completed run, turn i+1's
// speaker equals turn i's nominated recipient, every turn carries a routing
// extension, and the walk is seeded with the first roster agent.
func TestSelfDirected_RoutingInvariantProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "agents")
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("agent%d", i)
		}

		// Random adjacency: any subset of the other agents, order fixed.
		adj := make(map[string][]string, n)
		for _, name := range names {
			var ns []string
			for _, other := range names {
				if other == name {
					continue
				}
				if rapid.Bool().Draw(rt, "edge_"+name+"_"+other) {
					ns = append(ns, other)
				}
			}
			adj[name] = ns
		}
		topo, err := NewTopology(adj)
		require.NoError(rt, err)

		seed := rapid.Int64().Draw(rt, "seed")
		chooser := NewRandChooser(seed)

		agents := make([]chat.Agent, 0, n)
		for _, name := range names {
			a, err := NewAgent(&innerAgent{name: name}, topo, WithChooser(chooser))
			require.NoError(rt, err)
			agents = append(agents, a)
		}

		// The max-turns cap bounds walks that keep nominating recipients.
		termination := chat.NewCompositeTermination(NewTermination(), chat.NewMaxTurnsTermination(30))
		gc, err := chat.New(agents, NewSelection(), termination)
		require.NoError(rt, err)

		ctx := context.Background()
		for !gc.Done() {
			_, err := gc.Step(ctx)
			require.NoError(rt, err)
		}

		h := gc.History()
		require.Greater(rt, h.Len(), 0)

		first, err := h.At(0)
		require.NoError(rt, err)
		require.Equal(rt, names[0], first.Message.Source)

		for i := 0; i < h.Len(); i++ {
			entry, err := h.At(i)
			require.NoError(rt, err)
			require.NotNil(rt, entry.Context.Routing, "turn %d missing routing extension", i)

			if i+1 < h.Len() {
				next, err := h.At(i + 1)
				require.NoError(rt, err)
				require.True(rt, entry.Context.Routing.HasRecipient(),
					"non-final turn %d nominated no recipient", i)
				require.Equal(rt, entry.Context.Routing.RecipientName(), next.Message.Source,
					"turn %d recipient does not match turn %d speaker", i, i+1)
			}
		}

		// The cached done flag is re-derivable by replaying the policy.
		res, err := termination.CheckTermination(h)
		require.NoError(rt, err)
		require.True(rt, res.Terminated)

		// Terminal state is sticky.
		_, err = gc.Step(ctx)
		require.True(rt, types.IsAlreadyDone(err))
	})
}

// Property: the self-directed termination verdict is terminal iff the last
// entry's recipient is absent, and empty histories never terminate.
func TestSelfDirected_TerminationCorrectnessProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		h := chat.NewHistory()
		policy := NewTermination()

		res, err := policy.CheckTermination(h)
		require.NoError(rt, err)
		require.False(rt, res.Terminated)

		turns := rapid.IntRange(1, 10).Draw(rt, "turns")
		var lastHasRecipient bool
		for i := 0; i < turns; i++ {
			lastHasRecipient = rapid.Bool().Draw(rt, fmt.Sprintf("recipient_%d", i))
			var recipient *string
			if lastHasRecipient {
				name := fmt.Sprintf("agent%d", rapid.IntRange(0, 4).Draw(rt, fmt.Sprintf("name_%d", i)))
				recipient = &name
			}
			h.Append(routedTurn(fmt.Sprintf("agent%d", i%3), recipient, nil))
		}

		res, err = policy.CheckTermination(h)
		require.NoError(rt, err)
		require.Equal(rt, !lastHasRecipient, res.Terminated)
		if res.Terminated {
			require.Equal(rt, chat.ReasonGoalReached, res.Reason)
		}
	})
}

// Property: a single candidate is always elected deterministically, for any
// candidate name.
func TestSelectRecipient_SingleCandidateProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "candidate")

		topo, err := NewTopology(map[string][]string{"self": nil})
		require.NoError(rt, err)
		a, err := NewAgent(&innerAgent{name: "self"}, topo, WithChooser(panicChooser{}))
		require.NoError(rt, err)

		got := a.SelectRecipient(chat.NewHistory(), []string{name})
		require.NotNil(rt, got)
		require.Equal(rt, name, *got)
	})
}
