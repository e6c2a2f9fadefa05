package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGeometry is the fixture most package tests run on: a 10x10 arena with
// a one-cell obstacle on plains, a 4x4 arena on cellar, and the spawn cell
// (1, 1) outside both.
func testGeometry() *Geometry {
	return NewGeometry([]MapDef{
		{
			Name:      "plains",
			Arena:     []Rect{{X: 3, Y: 3, W: 10, H: 10}},
			Obstacles: []Rect{{X: 7, Y: 7, W: 1, H: 1}},
		},
		{
			Name:  "cellar",
			Arena: []Rect{{X: 2, Y: 2, W: 4, H: 4}},
		},
	})
}

func TestDirectionOffset(t *testing.T) {
	cases := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, 1},
		{DirDown, 0, -1},
		{DirRight, 1, 0},
		{DirLeft, -1, 0},
	}
	for _, c := range cases {
		dx, dy := c.dir.Offset()
		assert.Equal(t, c.dx, dx, "dx of %s", c.dir)
		assert.Equal(t, c.dy, dy, "dy of %s", c.dir)
	}

	dx, dy := Direction("sideways").Offset()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.False(t, Direction("sideways").Valid())
}

func TestMapCellStep(t *testing.T) {
	at := MapCell{Map: "plains", X: 5, Y: 5}
	assert.Equal(t, MapCell{Map: "plains", X: 5, Y: 6}, at.Step(DirUp))
	assert.Equal(t, MapCell{Map: "plains", X: 5, Y: 4}, at.Step(DirDown))
	assert.Equal(t, MapCell{Map: "plains", X: 6, Y: 5}, at.Step(DirRight))
	assert.Equal(t, MapCell{Map: "plains", X: 4, Y: 5}, at.Step(DirLeft))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 3, Y: 3, W: 10, H: 10}

	assert.True(t, r.Contains(3, 3), "lower corner is inside")
	assert.True(t, r.Contains(12, 12), "last covered cell is inside")
	assert.False(t, r.Contains(13, 12), "width bound is exclusive")
	assert.False(t, r.Contains(12, 13), "height bound is exclusive")
	assert.False(t, r.Contains(2, 3))
	assert.False(t, r.Contains(3, 2))
}

func TestGeometryContainment(t *testing.T) {
	geo := testGeometry()

	assert.True(t, geo.InsideArena(MapCell{Map: "plains", X: 5, Y: 5}))
	assert.True(t, geo.InsideArena(MapCell{Map: "cellar", X: 2, Y: 2}))
	assert.False(t, geo.InsideArena(MapCell{Map: "plains", X: 1, Y: 1}), "spawn cell is outside the arena")
	assert.False(t, geo.InsideArena(MapCell{Map: "cellar", X: 6, Y: 6}))
	assert.False(t, geo.InsideArena(MapCell{Map: "nowhere", X: 5, Y: 5}), "unknown maps have no arena")

	assert.True(t, geo.OnObstacle(MapCell{Map: "plains", X: 7, Y: 7}))
	assert.False(t, geo.OnObstacle(MapCell{Map: "plains", X: 8, Y: 7}))
	assert.False(t, geo.OnObstacle(MapCell{Map: "cellar", X: 7, Y: 7}))
}

func TestGeometryMapNames(t *testing.T) {
	geo := testGeometry()

	assert.Equal(t, []string{"cellar", "plains"}, geo.MapNames())
	assert.Equal(t, "cellar", geo.DefaultMap())

	defs := geo.Maps()
	require.Len(t, defs, 2)
	assert.Equal(t, "cellar", defs[0].Name)
	assert.Equal(t, "plains", defs[1].Name)
}

func TestLoadGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.yaml")
	data := []byte(`maps:
  - name: plains
    arena:
      - { x: 3, y: 3, w: 10, h: 10 }
    obstacles:
      - { x: 7, y: 7, w: 1, h: 1 }
  - name: cellar
    arena:
      - { x: 2, y: 2, w: 4, h: 4 }
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	geo, err := LoadGeometry(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"cellar", "plains"}, geo.MapNames())
	assert.Equal(t, []Rect{{X: 3, Y: 3, W: 10, H: 10}}, geo.RectanglesForMap("plains"))
	assert.Equal(t, []Rect{{X: 7, Y: 7, W: 1, H: 1}}, geo.ObstaclesForMap("plains"))
	assert.True(t, geo.InsideArena(MapCell{Map: "cellar", X: 4, Y: 4}))
}

func TestLoadGeometryErrors(t *testing.T) {
	_, err := LoadGeometry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("maps: []\n"), 0o644))
	_, err = LoadGeometry(empty)
	assert.Error(t, err, "a config without maps is rejected")

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("maps: {not a list"), 0o644))
	_, err = LoadGeometry(broken)
	assert.Error(t, err)
}
