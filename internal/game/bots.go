package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
)

const (
	botStepTicks    = 3 // bullet ticks between bot steps
	botAttackChance = 0.15
	botNoiseStride  = 0.07
	botNoiseAlpha   = 2.0
	botNoiseBeta    = 2.0
	botNoiseOctaves = 3
)

// Bot is a server-driven wanderer that keeps rounds busy. Each bot walks a
// 1D perlin track and quantizes the sample into a facing, which gives it a
// drifting, non-jittery path.
type Bot struct {
	PlayerID string
	noise    *perlin.Perlin
	t        float64
	facing   Direction
	ticks    int
	rng      *rand.Rand
}

// SpawnBots adds n wandering players to the world, spread across the maps.
// Call it before Run; bots advance on the bullet tick.
func (w *World) SpawnBots(n int) {
	names := w.geo.MapNames()
	if len(names) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		mapName := names[i%len(names)]
		at, ok := w.arenaEntry(mapName)
		if !ok {
			continue
		}

		player := w.players.Add(fmt.Sprintf("Drone %d", i+1), at)
		seed := time.Now().UnixNano() + int64(i)*7919
		w.bots = append(w.bots, &Bot{
			PlayerID: player.ID,
			noise:    perlin.NewPerlin(botNoiseAlpha, botNoiseBeta, botNoiseOctaves, seed),
			facing:   DirUp,
			rng:      rand.New(rand.NewSource(seed)),
		})
	}

	if n > 0 {
		w.logger.Infof("Spawned %d bots", n)
	}
}

// updateBots advances every bot. Runs on the scheduler goroutine.
func (w *World) updateBots() {
	for _, bot := range w.bots {
		bot.ticks++
		if bot.ticks%botStepTicks != 0 {
			continue
		}
		player, ok := w.players.Get(bot.PlayerID)
		if !ok {
			continue
		}

		bot.t += botNoiseStride
		bot.facing = directionFromNoise(bot.noise.Noise1D(bot.t))

		next := player.At().Step(bot.facing)
		if !w.geo.InsideArena(player.At()) {
			// Relocated out of the arena, walk back in
			next, ok = w.arenaEntry(player.Map)
			if !ok {
				continue
			}
		}
		if w.geo.InsideArena(next) && !w.geo.OnObstacle(next) {
			w.players.MovePlayer(bot.PlayerID, next, false)
		}

		if bot.rng.Float64() < botAttackChance {
			w.Attack(bot.PlayerID, player.At(), bot.facing)
		}
	}
}

// arenaEntry picks the cell bots enter a map's arena through: the center of
// its first rectangle.
func (w *World) arenaEntry(mapName string) (MapCell, bool) {
	rects := w.geo.RectanglesForMap(mapName)
	if len(rects) == 0 {
		return MapCell{}, false
	}
	r := rects[0]
	return MapCell{Map: mapName, X: r.X + r.W/2, Y: r.Y + r.H/2}, true
}

// directionFromNoise quantizes a perlin sample in [-1, 1] to a facing.
func directionFromNoise(v float64) Direction {
	switch {
	case v < -0.5:
		return DirLeft
	case v < 0:
		return DirDown
	case v < 0.5:
		return DirUp
	default:
		return DirRight
	}
}
