package route

import (
	"math/rand"
	"sync"
	"time"
)

// Chooser is the single source of randomness in the routing protocol.
// Choose returns a uniform index in [0, n). Injecting a scripted Chooser
// makes a walk fully deterministic for testing.
type Chooser interface {
	Choose(n int) int
}

type randChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandChooser creates a Chooser seeded for reproducible walks.
func NewRandChooser(seed int64) Chooser {
	return &randChooser{rng: rand.New(rand.NewSource(seed))}
}

// NewChooser creates a time-seeded Chooser.
func NewChooser() Chooser {
	return NewRandChooser(time.Now().UnixNano())
}

func (c *randChooser) Choose(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}
