package route

import (
	"context"

	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/types"
)

// innerAgent is a scripted reply producer used as the wrapped generic agent.
type innerAgent struct {
	name     string
	metadata map[string]any
	err      error
}

func (a *innerAgent) Name() string        { return a.name }
func (a *innerAgent) Description() string { return "inner agent " + a.name }

func (a *innerAgent) GenerateReply(context.Context, chat.HistoryView) (types.Message, types.TurnContext, error) {
	if a.err != nil {
		return types.Message{}, types.TurnContext{}, a.err
	}
	return types.NewMessage(a.name, "reply from "+a.name), types.TurnContext{Metadata: a.metadata}, nil
}

// scriptedChooser replays a fixed sequence of choices.
type scriptedChooser struct {
	choices []int
	pos     int
}

func (c *scriptedChooser) Choose(n int) int {
	if c.pos >= len(c.choices) {
		panic("scripted chooser exhausted")
	}
	idx := c.choices[c.pos]
	c.pos++
	if idx >= n {
		panic("scripted choice out of range")
	}
	return idx
}

// panicChooser fails the test if randomness is consulted at all.
type panicChooser struct{}

func (panicChooser) Choose(int) int { panic("randomness must not be consulted") }

func strPtr(s string) *string { return &s }
