package game

import (
	"sync"
	"time"
)

// CooldownGate rate-limits attacks per player. A player holds at most one
// pending cooldown at a time; it releases itself once the window elapses.
type CooldownGate struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[string]*time.Timer
}

// NewCooldownGate creates a gate with the given release window.
func NewCooldownGate(window time.Duration) *CooldownGate {
	return &CooldownGate{
		window:  window,
		pending: make(map[string]*time.Timer),
	}
}

// TryAcquire registers a cooldown for the player if none is pending and
// schedules its release. It returns false while a previous cooldown is
// still running.
func (g *CooldownGate) TryAcquire(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.pending[playerID]; exists {
		return false
	}
	g.pending[playerID] = time.AfterFunc(g.window, func() {
		g.Release(playerID)
	})
	return true
}

// Release drops the player's pending cooldown. Releasing a player with no
// pending cooldown is a no-op.
func (g *CooldownGate) Release(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if timer, exists := g.pending[playerID]; exists {
		timer.Stop()
		delete(g.pending, playerID)
	}
}

// Pending reports whether the player currently holds a cooldown.
func (g *CooldownGate) Pending(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, exists := g.pending[playerID]
	return exists
}
