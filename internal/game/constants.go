package game

import "time"

// Simulation timing constants
const (
	BulletTickPeriod = 100 * time.Millisecond // Fast tick: bullet advancement
	ArenaTickPeriod  = 2 * time.Second        // Slow tick: fire border growth
	BulletLifetime   = 24                     // Ticks a bullet survives before expiring
	AttackCooldown   = 800 * time.Millisecond // Minimum delay between attacks per player
)

// Layer names for cell occupancy queries and client updates
const (
	LayerBullets   = "bullets"
	LayerFire      = "fire"
	LayerObstacles = "obstacles"
)

// Message types for client-server communication
const (
	MsgTypeWelcome = "welcome"
	MsgTypeLayer   = "layer"
	MsgTypePlayer  = "player"
	MsgTypeJoin    = "join"
	MsgTypeMove    = "move"
	MsgTypeAttack  = "attack"
)

// Players caught on a hazard are teleported to this cell on their current
// map. It sits outside every arena rectangle, so it is never lethal.
const (
	SpawnCellX = 1
	SpawnCellY = 1
)

// Channel capacities
const (
	clientSendBuffer    = 256
	positionEventBuffer = 128
)
