package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/types"
)

func routedTurn(source string, recipient *string, candidates []string) (types.Message, types.TurnContext) {
	return types.NewMessage(source, "from "+source), types.TurnContext{
		Routing: &types.RoutingExtension{Recipient: recipient, Candidates: candidates},
	}
}

func TestTermination_EmptyHistoryNeverTerminates(t *testing.T) {
	t.Parallel()

	res, err := NewTermination().CheckTermination(chat.NewHistory())
	require.NoError(t, err)
	assert.False(t, res.Terminated)
}

func TestTermination_TerminatesOnNoRecipient(t *testing.T) {
	t.Parallel()

	h := chat.NewHistory()
	h.Append(routedTurn("a", nil, nil))

	res, err := NewTermination().CheckTermination(h)
	require.NoError(t, err)
	assert.True(t, res.Terminated)
	assert.Equal(t, chat.ReasonGoalReached, res.Reason)
	assert.Equal(t, "No recipient", res.Explanation)
}

func TestTermination_NotTerminatedWhileRecipientNominated(t *testing.T) {
	t.Parallel()

	h := chat.NewHistory()
	h.Append(routedTurn("a", strPtr("b"), []string{"a"}))

	res, err := NewTermination().CheckTermination(h)
	require.NoError(t, err)
	assert.False(t, res.Terminated)
}

func TestTermination_OnlyLastEntryCounts(t *testing.T) {
	t.Parallel()

	h := chat.NewHistory()
	h.Append(routedTurn("a", strPtr("b"), nil))
	h.Append(routedTurn("b", nil, nil))

	res, err := NewTermination().CheckTermination(h)
	require.NoError(t, err)
	assert.True(t, res.Terminated)
}

func TestTermination_MissingRoutingIsInvariantViolation(t *testing.T) {
	t.Parallel()

	h := chat.NewHistory()
	h.Append(types.NewMessage("a", "bare turn"), types.TurnContext{})

	_, err := NewTermination().CheckTermination(h)
	require.Error(t, err)
	assert.True(t, types.IsInvariantViolation(err))
}

func TestSelection_EmptyHistorySeedsWithFirstAgent(t *testing.T) {
	t.Parallel()

	agents := []chat.Agent{
		chatAgent(t, "first"),
		chatAgent(t, "second"),
	}
	speaker, hint, err := NewSelection().SelectSpeaker(agents, chat.NewHistory())
	require.NoError(t, err)
	assert.Equal(t, "first", speaker.Name())
	assert.Empty(t, hint)
}

func TestSelection_ForcedByPreviousRecipient(t *testing.T) {
	t.Parallel()

	agents := []chat.Agent{
		chatAgent(t, "first"),
		chatAgent(t, "second"),
	}
	h := chat.NewHistory()
	h.Append(routedTurn("first", strPtr("second"), nil))

	speaker, _, err := NewSelection().SelectSpeaker(agents, h)
	require.NoError(t, err)
	assert.Equal(t, "second", speaker.Name())
}

func TestSelection_NilRecipientIsInvariantViolation(t *testing.T) {
	t.Parallel()

	agents := []chat.Agent{chatAgent(t, "first")}
	h := chat.NewHistory()
	h.Append(routedTurn("first", nil, nil))

	_, _, err := NewSelection().SelectSpeaker(agents, h)
	require.Error(t, err)
	assert.True(t, types.IsInvariantViolation(err))
}

func TestSelection_UnknownRecipientIsInvariantViolation(t *testing.T) {
	t.Parallel()

	agents := []chat.Agent{chatAgent(t, "first")}
	h := chat.NewHistory()
	h.Append(routedTurn("first", strPtr("ghost"), nil))

	_, _, err := NewSelection().SelectSpeaker(agents, h)
	require.Error(t, err)
	assert.True(t, types.IsInvariantViolation(err))
}

func TestSelection_EmptyRoster(t *testing.T) {
	t.Parallel()

	_, _, err := NewSelection().SelectSpeaker(nil, chat.NewHistory())
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrCodeInvalidConfig))
}

// chatAgent builds a routed agent over a trivial topology, so selection tests
// operate on the same concrete type the orchestrator sees.
func chatAgent(t *testing.T, name string) chat.Agent {
	t.Helper()
	topo, err := NewTopology(map[string][]string{name: nil})
	require.NoError(t, err)
	a, err := NewAgent(&innerAgent{name: name}, topo)
	require.NoError(t, err)
	return a
}
