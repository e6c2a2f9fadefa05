package game

import "expvar"

// Runtime counters exposed on /debug/vars.
var (
	statBulletsSpawned   = ensureCounter("bullets_spawned")
	statBulletsExpired   = ensureCounter("bullets_expired")
	statPlayersRelocated = ensureCounter("players_relocated")
	statArenaTicks       = ensureCounter("arena_ticks")
	statAttacksDenied    = ensureCounter("attacks_denied")
)

func ensureCounter(name string) *expvar.Int {
	if v, ok := expvar.Get(name).(*expvar.Int); ok {
		return v
	}
	return expvar.NewInt(name)
}
