package llm

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/agentchat/types"
)

// TiktokenTokenizer counts tokens with the model's BPE encoding, falling back
// to character-based estimation when the encoding is unavailable (unknown
// model, or encoding files not reachable).
type TiktokenTokenizer struct {
	enc         *tiktoken.Tiktoken
	fallback    *types.EstimateTokenizer
	msgOverhead int
}

// NewTiktokenTokenizer creates a tokenizer for the given model.
func NewTiktokenTokenizer(model string) *TiktokenTokenizer {
	t := &TiktokenTokenizer{
		fallback:    types.NewEstimateTokenizer(),
		msgOverhead: 4,
	}
	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		t.enc = enc
	}
	return t
}

// CountTokens counts tokens in text.
func (t *TiktokenTokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if t.enc == nil {
		return t.fallback.CountTokens(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}

// CountMessageTokens counts tokens in a message.
func (t *TiktokenTokenizer) CountMessageTokens(msg types.Message) int {
	tokens := t.msgOverhead
	tokens += t.CountTokens(msg.Text())
	if msg.Source != "" {
		tokens += t.CountTokens(msg.Source)
	}
	for _, tc := range msg.ToolCalls {
		tokens += t.CountTokens(tc.Name)
		tokens += len(tc.Arguments) / 4
	}
	return tokens
}

// CountMessagesTokens counts tokens in messages.
func (t *TiktokenTokenizer) CountMessagesTokens(msgs []types.Message) int {
	total := 0
	for _, msg := range msgs {
		total += t.CountMessageTokens(msg)
	}
	return total
}
