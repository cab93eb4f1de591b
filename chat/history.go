package chat

import (
	"sync"

	"github.com/BaSui01/agentchat/types"
)

// Entry is one turn of a conversation: a message and its per-turn context.
type Entry struct {
	Message types.Message     `json:"message"`
	Context types.TurnContext `json:"context"`
}

// HistoryView is the read-only view of a conversation history handed to
// policies and agents. Only the orchestrator holds the mutable History.
type HistoryView interface {
	// Len returns the number of turns taken so far.
	Len() int
	// At returns the entry at position i.
	At(i int) (Entry, error)
	// Last returns the most recent entry. It fails with EMPTY_HISTORY when
	// no turn has been taken yet.
	Last() (Entry, error)
	// Messages returns a copy of all messages in order.
	Messages() []types.Message
}

// History is the append-only ordered log of conversation turns. Appends are
// atomic with respect to readers: an entry is published whole under the write
// lock, so a reader never observes a partially-appended turn.
type History struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds one turn to the history.
func (h *History) Append(msg types.Message, tctx types.TurnContext) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{Message: msg, Context: tctx})
}

// Len returns the number of turns taken so far.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// At returns the entry at position i.
func (h *History) At(i int) (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= len(h.entries) {
		return Entry{}, types.NewError(types.ErrCodeEmptyHistory, "history index out of range")
	}
	return h.entries[i], nil
}

// Last returns the most recent entry.
func (h *History) Last() (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.entries) == 0 {
		return Entry{}, types.NewError(types.ErrCodeEmptyHistory, "history is empty")
	}
	return h.entries[len(h.entries)-1], nil
}

// Messages returns a copy of all messages in order.
func (h *History) Messages() []types.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]types.Message, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Message
	}
	return out
}

// Reset discards all entries.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
