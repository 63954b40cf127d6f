package treeopt

import (
	"sync"

	"github.com/katalvlaran/dualtree/event"
)

// GlobalMinimum is a thread-safe, monotonically non-increasing shared
// register of the best score found so far. Grounded on
// original_source/src/inf/optimization/tree_opt.h's GlobalMinimum, realized
// with sync.RWMutex the way the teacher's core.Graph protects its
// reader-heavy, writer-rare vertex/edge maps: Get is called on every
// interior node visited (the hot path) while SetIfSmaller only fires on an
// improvement.
type GlobalMinimum struct {
	mu      sync.RWMutex
	current event.Num
}

// NewGlobalMinimum returns a GlobalMinimum initialised to event.MaxNum.
func NewGlobalMinimum() *GlobalMinimum {
	return &GlobalMinimum{current: event.MaxNum}
}

// Get returns the current value under a reader lock.
func (g *GlobalMinimum) Get() event.Num {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// SetIfSmaller sets the register to s under a writer lock, iff s is
// strictly smaller than the current value. Never increases the register.
func (g *GlobalMinimum) SetIfSmaller(s event.Num) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s < g.current {
		g.current = s
	}
}

// Reset restores the register to event.MaxNum under a writer lock.
func (g *GlobalMinimum) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = event.MaxNum
}
