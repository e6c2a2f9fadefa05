package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// World wires the round engine together: static geometry, the player store,
// the hazard layers, their schedulers, and the client-facing actions.
type World struct {
	geo       *Geometry
	players   *PlayerStore
	hub       *Hub
	cooldowns *CooldownGate
	bullets   *BulletRegistry
	shrinker  *Shrinker
	hazard    *HazardReactor
	bots      []*Bot
	logger    *zap.SugaredLogger

	stopOnce sync.Once
	done     chan struct{}
}

// NewWorld creates a stopped world on the given geometry. Call Run to start
// the round.
func NewWorld(geo *Geometry, hub *Hub, logger *zap.SugaredLogger) *World {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	w := &World{
		geo:    geo,
		hub:    hub,
		logger: logger,
		done:   make(chan struct{}),
	}
	w.players = NewPlayerStore(logger)
	w.cooldowns = NewCooldownGate(AttackCooldown)
	w.bullets = NewBulletRegistry(geo, w.players, w.players, hub, BulletLifetime, logger)
	w.shrinker = NewShrinker(geo, hub, logger)
	w.hazard = NewHazardReactor(w, w.players, logger)
	return w
}

// Run drives the round: it subscribes the hazard reactor and the client
// fan-out to the position feed, then pumps the two schedulers until the
// fire border finishes, Stop is called, or the context ends.
func (w *World) Run(ctx context.Context) error {
	w.players.OnPositionChanged(func(ev PositionEvent) {
		w.hazard.OnPlayerMoved(ev.PlayerID, ev.At)
	})
	w.players.OnPositionChanged(func(ev PositionEvent) {
		if p, ok := w.players.Get(ev.PlayerID); ok {
			w.hub.PublishPlayer(p, ev.Forced, false)
		}
	})
	go w.players.Dispatch(w.done)

	bulletTicker := time.NewTicker(BulletTickPeriod)
	defer bulletTicker.Stop()
	arenaTicker := time.NewTicker(ArenaTickPeriod)
	defer arenaTicker.Stop()

	w.logger.Infof("Round started on %d maps, bullet tick %s, arena tick %s",
		len(w.geo.MapNames()), BulletTickPeriod, ArenaTickPeriod)

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return nil
		case <-w.done:
			return nil
		case <-bulletTicker.C:
			w.bullets.Tick()
			w.updateBots()
		case <-arenaTicker.C:
			w.arenaTick()
		}
	}
}

// arenaTick advances the fire border and ends the round once every arena
// rectangle on every map has burned down.
func (w *World) arenaTick() {
	if !w.shrinker.Tick() {
		w.Stop()
	}
}

// Stop ends the round. Safe to call more than once.
func (w *World) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Infof("Round stopped")
		close(w.done)
	})
}

// Done closes once the round has stopped.
func (w *World) Done() <-chan struct{} {
	return w.done
}

// Join adds a player for the client at the spawn cell of the default map,
// sends it the welcome payload and the current layer state, and announces
// it to everyone. It returns the new player's id.
func (w *World) Join(client *Client, name string) string {
	if name == "" {
		name = "Drifter"
	}

	at := MapCell{Map: w.geo.DefaultMap(), X: SpawnCellX, Y: SpawnCellY}
	player := w.players.Add(name, at)

	w.hub.Register(client)
	client.send(WelcomeMsg{
		Type:     MsgTypeWelcome,
		PlayerID: player.ID,
		Map:      at.Map,
		X:        at.X,
		Y:        at.Y,
		Maps:     w.geo.Maps(),
	})
	for _, mapName := range w.geo.MapNames() {
		client.send(LayerMsg{Type: MsgTypeLayer, Map: mapName, Layer: LayerFire, Full: true, Cells: w.shrinker.CellsForMap(mapName)})
		client.send(LayerMsg{Type: MsgTypeLayer, Map: mapName, Layer: LayerBullets, Full: true, Cells: w.bullets.CellsForMap(mapName)})
	}
	for _, other := range w.players.Players() {
		if other.ID != player.ID {
			client.send(PlayerMsg{Type: MsgTypePlayer, ID: other.ID, Name: other.Name, Map: other.Map, X: other.X, Y: other.Y})
		}
	}

	w.hub.PublishPlayer(player, false, false)
	return player.ID
}

// DropClient unregisters a client and removes its player, announcing the
// departure.
func (w *World) DropClient(client *Client) {
	w.hub.Unregister(client)
	if client.PlayerID == "" {
		return
	}

	if p, ok := w.players.Get(client.PlayerID); ok {
		w.hub.PublishPlayer(p, false, true)
	}
	w.players.Remove(client.PlayerID)
}

// Player returns a copy of a tracked player.
func (w *World) Player(playerID string) (Player, bool) {
	return w.players.Get(playerID)
}

// Move applies a client move on the player's current map. Movement is taken
// at face value here; hazards on the target cell are the hazard reactor's
// problem.
func (w *World) Move(playerID string, to Cell) {
	player, ok := w.players.Get(playerID)
	if !ok {
		w.logger.Warnf("Ignored move for unknown player %s", playerID)
		return
	}
	w.players.MovePlayer(playerID, MapCell{Map: player.Map, X: to.X, Y: to.Y}, false)
}

// Attack spends the player's cooldown and spawns a bullet one cell from the
// origin along the facing. It reports whether a bullet was created. The
// cooldown is spent even when the spawn is rejected.
func (w *World) Attack(playerID string, origin MapCell, facing Direction) bool {
	if !w.cooldowns.TryAcquire(playerID) {
		statAttacksDenied.Add(1)
		return false
	}
	_, ok := w.bullets.Spawn(origin, facing)
	return ok
}

// CellOccupied reports whether the cell is occupied on the named layer.
// Unknown layers are empty.
func (w *World) CellOccupied(at MapCell, layer string) bool {
	switch layer {
	case LayerBullets:
		return w.bullets.CellOccupied(at)
	case LayerFire:
		return w.shrinker.CellOnFire(at)
	case LayerObstacles:
		return w.geo.OnObstacle(at)
	}
	return false
}
