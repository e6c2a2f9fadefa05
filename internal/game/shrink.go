package game

import (
	"sync"

	"go.uber.org/zap"
)

// Shrinker grows the lethal fire border inward from the edges of every arena
// rectangle. A single counter drives all maps together; it never resets
// during a round, so rectangles that finished early simply stay consumed
// while larger ones keep burning down.
type Shrinker struct {
	mu      sync.Mutex
	geo     *Geometry
	render  RenderSync
	logger  *zap.SugaredLogger
	counter int
	strips  map[string][]Rect
}

// NewShrinker creates a shrinker with no fire on any map yet.
func NewShrinker(geo *Geometry, render RenderSync, logger *zap.SugaredLogger) *Shrinker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Shrinker{
		geo:    geo,
		render: render,
		logger: logger,
		strips: make(map[string][]Rect),
	}
}

// Tick advances the border one step. Each arena rectangle grows four fire
// strips from its edges, clamped at half its width and height; the fire set
// of every map is fully replaced and published. Tick returns false once
// every rectangle on every map is consumed, after publishing that final
// state.
func (s *Shrinker) Tick() bool {
	s.mu.Lock()
	s.counter++
	statArenaTicks.Add(1)

	names := s.geo.MapNames()
	allConsumed := true
	snapshots := make(map[string][]Cell, len(names))
	for _, name := range names {
		rects := s.geo.RectanglesForMap(name)
		strips := make([]Rect, 0, 4*len(rects))
		for _, r := range rects {
			wBound := min(s.counter, r.W/2)
			hBound := min(s.counter, r.H/2)
			strips = append(strips,
				Rect{X: r.X, Y: r.Y, W: r.W, H: hBound},
				Rect{X: r.X, Y: r.Y + r.H - hBound, W: r.W, H: hBound},
				Rect{X: r.X, Y: r.Y, W: wBound, H: r.H},
				Rect{X: r.X + r.W - wBound, Y: r.Y, W: wBound, H: r.H},
			)
			if wBound < r.W/2 || hBound < r.H/2 {
				allConsumed = false
			}
		}
		s.strips[name] = strips
		snapshots[name] = stripCells(strips)
	}
	counter := s.counter
	s.mu.Unlock()

	for name, cells := range snapshots {
		s.render.PublishLayerSnapshot(name, LayerFire, cells)
	}

	if allConsumed {
		s.logger.Infof("Fire border consumed every arena after %d ticks", counter)
		return false
	}
	return true
}

// CellOnFire reports whether the cell lies inside any live fire strip.
func (s *Shrinker) CellOnFire(at MapCell) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.strips[at.Map] {
		if r.Contains(at.X, at.Y) {
			return true
		}
	}
	return false
}

// CellsForMap returns the burning cells of one map.
func (s *Shrinker) CellsForMap(name string) []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stripCells(s.strips[name])
}

// Counter returns the number of ticks taken so far.
func (s *Shrinker) Counter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

// stripCells expands fire strips into a deduplicated cell set. Opposing
// strips overlap once a rectangle is nearly consumed, so duplicates are
// collapsed before publishing.
func stripCells(strips []Rect) []Cell {
	seen := make(map[Cell]struct{})
	cells := make([]Cell, 0, 64)
	for _, r := range strips {
		for x := r.X; x < r.X+r.W; x++ {
			for y := r.Y; y < r.Y+r.H; y++ {
				c := Cell{X: x, Y: y}
				if _, dup := seen[c]; dup {
					continue
				}
				seen[c] = struct{}{}
				cells = append(cells, c)
			}
		}
	}
	return cells
}
