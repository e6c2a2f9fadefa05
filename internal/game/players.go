package game

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlayerStore tracks every participant's position and fans position changes
// out through a buffered feed. Handlers run one event at a time on the
// dispatch goroutine, so a relocation triggered inside a handler queues as
// its own later event instead of re-entering the evaluation in progress.
type PlayerStore struct {
	mu       sync.RWMutex
	players  map[string]*Player
	handlers []func(PositionEvent)
	events   chan PositionEvent
	logger   *zap.SugaredLogger
}

// NewPlayerStore creates an empty store.
func NewPlayerStore(logger *zap.SugaredLogger) *PlayerStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &PlayerStore{
		players: make(map[string]*Player),
		events:  make(chan PositionEvent, positionEventBuffer),
		logger:  logger,
	}
}

// Add registers a new player at the given cell and returns a copy of it.
func (ps *PlayerStore) Add(name string, at MapCell) Player {
	player := &Player{
		ID:   uuid.NewString(),
		Name: name,
		Map:  at.Map,
		X:    at.X,
		Y:    at.Y,
	}

	ps.mu.Lock()
	ps.players[player.ID] = player
	ps.mu.Unlock()

	ps.logger.Infof("Player %s (%s) joined at (%d, %d) on %s", player.ID, name, at.X, at.Y, at.Map)
	return *player
}

// Remove forgets a player. Removing an unknown player is a no-op.
func (ps *PlayerStore) Remove(playerID string) {
	ps.mu.Lock()
	player, exists := ps.players[playerID]
	if exists {
		delete(ps.players, playerID)
	}
	ps.mu.Unlock()

	if exists {
		ps.logger.Infof("Player %s (%s) left the game", playerID, player.Name)
	}
}

// Get returns a copy of the player.
func (ps *PlayerStore) Get(playerID string) (Player, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	player, exists := ps.players[playerID]
	if !exists {
		return Player{}, false
	}
	return *player, true
}

// AllPlayers returns a snapshot of every tracked player's location.
func (ps *PlayerStore) AllPlayers() map[string]MapCell {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	all := make(map[string]MapCell, len(ps.players))
	for id, p := range ps.players {
		all[id] = p.At()
	}
	return all
}

// Players returns copies of every tracked player.
func (ps *PlayerStore) Players() []Player {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	players := make([]Player, 0, len(ps.players))
	for _, p := range ps.players {
		players = append(players, *p)
	}
	return players
}

// MovePlayer sets the player's position and queues a position event. Forced
// marks an involuntary teleport. Moving an unknown player is a logged no-op,
// and a full feed drops the event rather than stall the caller.
func (ps *PlayerStore) MovePlayer(playerID string, target MapCell, forced bool) {
	ps.mu.Lock()
	player, exists := ps.players[playerID]
	if exists {
		player.Map = target.Map
		player.X = target.X
		player.Y = target.Y
	}
	ps.mu.Unlock()

	if !exists {
		ps.logger.Warnf("Ignored move for unknown player %s", playerID)
		return
	}

	select {
	case ps.events <- PositionEvent{PlayerID: playerID, At: target, Forced: forced}:
	default:
		// Feed full, drop rather than block a tick
		ps.logger.Warnf("Position feed full, dropped event for player %s", playerID)
	}
}

// OnPositionChanged subscribes a handler to the position feed. Handlers run
// sequentially on the goroutine driving Dispatch, in subscription order.
func (ps *PlayerStore) OnPositionChanged(handler func(PositionEvent)) {
	ps.mu.Lock()
	ps.handlers = append(ps.handlers, handler)
	ps.mu.Unlock()
}

// Dispatch drains the position feed until stop closes, invoking every
// subscribed handler for each event.
func (ps *PlayerStore) Dispatch(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case ev := <-ps.events:
			ps.mu.RLock()
			handlers := ps.handlers
			ps.mu.RUnlock()
			for _, handler := range handlers {
				handler(ev)
			}
		}
	}
}

// Relocate forcibly returns a player to the spawn cell of the given map.
// It is fire-and-forget; the resulting position event lands on the next
// dispatch cycle like any other move.
func Relocate(reloc Relocator, playerID, mapName string) {
	statPlayersRelocated.Add(1)
	reloc.MovePlayer(playerID, MapCell{Map: mapName, X: SpawnCellX, Y: SpawnCellY}, true)
}
