package game

import (
	"fmt"
	"os"
	"sort"

	yaml "gopkg.in/yaml.v3"
)

// MapDef is the static geometry of one map: the arena rectangles players
// fight in and the impassable obstacle rectangles inside them.
type MapDef struct {
	Name      string `yaml:"name" msgpack:"name"`
	Arena     []Rect `yaml:"arena" msgpack:"arena"`
	Obstacles []Rect `yaml:"obstacles" msgpack:"obstacles"`
}

type geometryFile struct {
	Maps []MapDef `yaml:"maps"`
}

// Geometry answers containment queries against the static map definitions.
// It is immutable after construction and safe for concurrent use.
type Geometry struct {
	maps  map[string]MapDef
	names []string
}

// LoadGeometry reads map definitions from a YAML file.
func LoadGeometry(path string) (*Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geometry config: %w", err)
	}

	var file geometryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse geometry config: %w", err)
	}
	if len(file.Maps) == 0 {
		return nil, fmt.Errorf("geometry config %s defines no maps", path)
	}
	return NewGeometry(file.Maps), nil
}

// NewGeometry builds a lookup from already-parsed map definitions.
func NewGeometry(defs []MapDef) *Geometry {
	g := &Geometry{maps: make(map[string]MapDef, len(defs))}
	for _, def := range defs {
		g.maps[def.Name] = def
		g.names = append(g.names, def.Name)
	}
	sort.Strings(g.names)
	return g
}

// MapNames returns every known map name in stable order.
func (g *Geometry) MapNames() []string {
	names := make([]string, len(g.names))
	copy(names, g.names)
	return names
}

// DefaultMap returns the map new players spawn on.
func (g *Geometry) DefaultMap() string {
	return g.names[0]
}

// Maps returns the full definitions in name order, for welcome payloads.
func (g *Geometry) Maps() []MapDef {
	defs := make([]MapDef, 0, len(g.names))
	for _, name := range g.names {
		defs = append(defs, g.maps[name])
	}
	return defs
}

// RectanglesForMap returns the arena rectangles of a map.
func (g *Geometry) RectanglesForMap(name string) []Rect {
	return g.maps[name].Arena
}

// ObstaclesForMap returns the obstacle rectangles of a map.
func (g *Geometry) ObstaclesForMap(name string) []Rect {
	return g.maps[name].Obstacles
}

// InsideArena reports whether the cell lies within any arena rectangle of
// its map. Cells on unknown maps are outside.
func (g *Geometry) InsideArena(at MapCell) bool {
	for _, r := range g.maps[at.Map].Arena {
		if r.Contains(at.X, at.Y) {
			return true
		}
	}
	return false
}

// OnObstacle reports whether the cell lies within any obstacle rectangle of
// its map.
func (g *Geometry) OnObstacle(at MapCell) bool {
	for _, r := range g.maps[at.Map].Obstacles {
		if r.Contains(at.X, at.Y) {
			return true
		}
	}
	return false
}
