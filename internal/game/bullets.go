package game

import (
	"sync"

	"go.uber.org/zap"
)

// BulletRegistry owns every in-flight bullet and advances them on the fast
// tick. Bullets enter through Spawn and only the registry removes them.
type BulletRegistry struct {
	mu       sync.Mutex
	geo      *Geometry
	players  PlayerLocator
	reloc    Relocator
	render   RenderSync
	logger   *zap.SugaredLogger
	bullets  map[int]*Bullet
	nextID   int
	lifetime int
}

// NewBulletRegistry creates an empty registry. Bullets older than lifetime
// ticks expire on their next advancement.
func NewBulletRegistry(geo *Geometry, players PlayerLocator, reloc Relocator, render RenderSync, lifetime int, logger *zap.SugaredLogger) *BulletRegistry {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BulletRegistry{
		geo:      geo,
		players:  players,
		reloc:    reloc,
		render:   render,
		logger:   logger,
		bullets:  make(map[int]*Bullet),
		nextID:   1,
		lifetime: lifetime,
	}
}

// Spawn registers a new bullet one cell away from the origin along the
// facing, at age zero. It reports false when the facing is unknown or the
// origin lies outside every arena rectangle of its map; no bullet is
// created then. The starting cell itself is not validated, the first tick
// sorts it out.
func (r *BulletRegistry) Spawn(origin MapCell, facing Direction) (int, bool) {
	if !facing.Valid() {
		r.logger.Warnf("Rejected bullet with unknown facing %q from (%d, %d) on %s", facing, origin.X, origin.Y, origin.Map)
		return 0, false
	}
	if !r.geo.InsideArena(origin) {
		r.logger.Debugf("Rejected bullet from outside the arena at (%d, %d) on %s", origin.X, origin.Y, origin.Map)
		return 0, false
	}

	start := origin.Step(facing)

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.bullets[id] = &Bullet{ID: id, Map: start.Map, X: start.X, Y: start.Y, Facing: facing}
	r.mu.Unlock()

	statBulletsSpawned.Add(1)
	r.render.PublishLayerDelta(start.Map, LayerBullets, []Cell{start.Cell()})
	return id, true
}

// Tick advances every live bullet one cell along its facing and resolves at
// most one outcome per bullet: expiry by age, leaving the arena, striking an
// obstacle, or hitting a player. Player hits are checked against the cell
// the bullet just moved onto, and the first hit per bullet wins. Afterwards
// the bullet layer of every touched map is re-published.
func (r *BulletRegistry) Tick() {
	r.mu.Lock()
	touched := make(map[string]bool)
	for id, b := range r.bullets {
		touched[b.Map] = true

		dx, dy := b.Facing.Offset()
		b.X += dx
		b.Y += dy
		b.Age++

		if b.Age >= r.lifetime {
			delete(r.bullets, id)
			statBulletsExpired.Add(1)
			continue
		}
		if !r.geo.InsideArena(b.At()) {
			delete(r.bullets, id)
			continue
		}
		if r.geo.OnObstacle(b.At()) {
			delete(r.bullets, id)
			continue
		}

		for playerID, at := range r.players.AllPlayers() {
			if at == b.At() {
				r.logger.Infof("Bullet %d hit player %s at (%d, %d) on %s", id, playerID, b.X, b.Y, b.Map)
				Relocate(r.reloc, playerID, b.Map)
				delete(r.bullets, id)
				break
			}
		}
	}

	snapshots := make(map[string][]Cell, len(touched))
	for name := range touched {
		snapshots[name] = r.cellsOnMap(name)
	}
	r.mu.Unlock()

	for name, cells := range snapshots {
		r.render.PublishLayerSnapshot(name, LayerBullets, cells)
	}
}

// CellsForMap returns the cells of every live bullet on one map.
func (r *BulletRegistry) CellsForMap(name string) []Cell {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cellsOnMap(name)
}

// cellsOnMap collects live bullet cells on one map. Callers hold mu.
func (r *BulletRegistry) cellsOnMap(name string) []Cell {
	cells := make([]Cell, 0, len(r.bullets))
	for _, b := range r.bullets {
		if b.Map == name {
			cells = append(cells, Cell{X: b.X, Y: b.Y})
		}
	}
	return cells
}

// CellOccupied reports whether any live bullet sits on the cell.
func (r *BulletRegistry) CellOccupied(at MapCell) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bullets {
		if b.Map == at.Map && b.X == at.X && b.Y == at.Y {
			return true
		}
	}
	return false
}

// Get returns a copy of a live bullet.
func (r *BulletRegistry) Get(id int) (Bullet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.bullets[id]
	if !exists {
		return Bullet{}, false
	}
	return *b, true
}

// Len returns the number of live bullets.
func (r *BulletRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bullets)
}
