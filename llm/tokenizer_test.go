package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/agentchat/types"
)

func TestTiktokenTokenizer_FallbackForUnknownModel(t *testing.T) {
	t.Parallel()

	tok := NewTiktokenTokenizer("definitely-not-a-model")
	est := types.NewEstimateTokenizer()

	assert.Equal(t, 0, tok.CountTokens(""))
	assert.Equal(t, est.CountTokens("hello world"), tok.CountTokens("hello world"))
}

func TestTiktokenTokenizer_CountMessagesTokens(t *testing.T) {
	t.Parallel()

	tok := NewTiktokenTokenizer("definitely-not-a-model")
	msgs := []types.Message{
		types.NewMessage("alice", "hello"),
		types.NewMessage("bob", "world"),
	}

	total := tok.CountMessagesTokens(msgs)
	assert.Equal(t, tok.CountMessageTokens(msgs[0])+tok.CountMessageTokens(msgs[1]), total)
	assert.Greater(t, total, 0)
}
