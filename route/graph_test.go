package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentchat/types"
)

func TestNewTopology(t *testing.T) {
	t.Parallel()

	topo, err := NewTopology(map[string][]string{
		"center": {"spoke1", "spoke2"},
		"spoke1": {"center"},
		"spoke2": {"center"},
	})
	require.NoError(t, err)

	assert.True(t, topo.Contains("center"))
	assert.False(t, topo.Contains("ghost"))
	assert.Equal(t, []string{"spoke1", "spoke2"}, topo.Neighbors("center"))
	assert.Equal(t, []string{"center", "spoke1", "spoke2"}, topo.Names())
}

func TestNewTopology_UnknownNeighbor(t *testing.T) {
	t.Parallel()

	_, err := NewTopology(map[string][]string{"a": {"ghost"}})
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "ghost")
}

func TestNewTopology_SelfNeighbor(t *testing.T) {
	t.Parallel()

	_, err := NewTopology(map[string][]string{"a": {"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")
}

func TestTopology_NeighborsReturnsCopy(t *testing.T) {
	t.Parallel()

	topo, err := NewTopology(map[string][]string{
		"a": {"b"},
		"b": nil,
	})
	require.NoError(t, err)

	ns := topo.Neighbors("a")
	ns[0] = "mutated"
	assert.Equal(t, []string{"b"}, topo.Neighbors("a"))

	assert.Empty(t, topo.Neighbors("b"))
	assert.Empty(t, topo.Neighbors("ghost"))
}

func TestNewTopology_FrozenAgainstInput(t *testing.T) {
	t.Parallel()

	input := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}
	topo, err := NewTopology(input)
	require.NoError(t, err)

	input["a"][0] = "mutated"
	assert.Equal(t, []string{"b"}, topo.Neighbors("a"))
}
