package game

// Direction is one of the four cardinal facings a bullet can travel.
type Direction string

// Cardinal directions
const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Offset returns the unit displacement of the direction. The vertical axis
// grows upward: up is +y and down is -y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case DirUp, DirDown, DirLeft, DirRight:
		return true
	}
	return false
}

// Cell is a single integer grid cell.
type Cell struct {
	X int `msgpack:"x"`
	Y int `msgpack:"y"`
}

// MapCell locates a cell on a named map.
type MapCell struct {
	Map string `msgpack:"map"`
	X   int    `msgpack:"x"`
	Y   int    `msgpack:"y"`
}

// Cell returns the coordinate part of the location.
func (m MapCell) Cell() Cell {
	return Cell{X: m.X, Y: m.Y}
}

// Step returns the neighboring cell one unit along the direction.
func (m MapCell) Step(d Direction) MapCell {
	dx, dy := d.Offset()
	return MapCell{Map: m.Map, X: m.X + dx, Y: m.Y + dy}
}

// Rect is an axis-aligned rectangle in cell coordinates. W and H count
// cells, so the covered span is half-open: [X, X+W) by [Y, Y+H).
type Rect struct {
	X int `yaml:"x" msgpack:"x"`
	Y int `yaml:"y" msgpack:"y"`
	W int `yaml:"w" msgpack:"w"`
	H int `yaml:"h" msgpack:"h"`
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bullet is a single in-flight projectile.
type Bullet struct {
	ID     int       `msgpack:"id"`
	Map    string    `msgpack:"map"`
	X      int       `msgpack:"x"`
	Y      int       `msgpack:"y"`
	Facing Direction `msgpack:"facing"`
	Age    int       `msgpack:"-"`
}

// At returns the bullet's current location.
func (b *Bullet) At() MapCell {
	return MapCell{Map: b.Map, X: b.X, Y: b.Y}
}

// Player is a tracked participant on the shared world.
type Player struct {
	ID   string `msgpack:"id"`
	Name string `msgpack:"name"`
	Map  string `msgpack:"map"`
	X    int    `msgpack:"x"`
	Y    int    `msgpack:"y"`
}

// At returns the player's current location.
func (p *Player) At() MapCell {
	return MapCell{Map: p.Map, X: p.X, Y: p.Y}
}

// PositionEvent describes one player position change on the feed.
type PositionEvent struct {
	PlayerID string
	At       MapCell
	Forced   bool
}

// RenderSync pushes layer state toward connected clients. Implementations
// must never block the caller; delivery is best effort.
type RenderSync interface {
	PublishLayerSnapshot(mapName, layer string, cells []Cell)
	PublishLayerDelta(mapName, layer string, cells []Cell)
}

// PlayerLocator lists tracked player positions.
type PlayerLocator interface {
	AllPlayers() map[string]MapCell
}

// Relocator forcibly repositions players.
type Relocator interface {
	MovePlayer(playerID string, target MapCell, forced bool)
}

// LayerLookup answers whether a cell is occupied on a named layer.
type LayerLookup interface {
	CellOccupied(at MapCell, layer string) bool
}

// WelcomeMsg is sent once to a client after it joins.
type WelcomeMsg struct {
	Type     string   `msgpack:"type"`
	PlayerID string   `msgpack:"id"`
	Map      string   `msgpack:"map"`
	X        int      `msgpack:"x"`
	Y        int      `msgpack:"y"`
	Maps     []MapDef `msgpack:"maps"`
}

// LayerMsg carries the cells of one hazard layer on one map. Full replaces
// the client's copy of the layer; otherwise the cells merge into it.
type LayerMsg struct {
	Type  string `msgpack:"type"`
	Map   string `msgpack:"map"`
	Layer string `msgpack:"layer"`
	Full  bool   `msgpack:"full"`
	Cells []Cell `msgpack:"cells"`
}

// PlayerMsg notifies clients of a player joining, moving, or leaving.
type PlayerMsg struct {
	Type   string `msgpack:"type"`
	ID     string `msgpack:"id"`
	Name   string `msgpack:"name"`
	Map    string `msgpack:"map"`
	X      int    `msgpack:"x"`
	Y      int    `msgpack:"y"`
	Forced bool   `msgpack:"forced"`
	Left   bool   `msgpack:"left"`
}

// CommandMsg is a single inbound client command.
type CommandMsg struct {
	Type   string `msgpack:"type"`
	Name   string `msgpack:"name"`
	X      int    `msgpack:"x"`
	Y      int    `msgpack:"y"`
	Facing string `msgpack:"facing"`
}
