package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HazardReactor relocates players who move onto lethal terrain. It only
// reads the layers; stepping on a bullet never removes the bullet.
type HazardReactor struct {
	layers LayerLookup
	reloc  Relocator
	logger *zap.SugaredLogger
}

// NewHazardReactor wires the reactor to the layer lookup it checks and the
// relocator it fires on a hit.
func NewHazardReactor(layers LayerLookup, reloc Relocator, logger *zap.SugaredLogger) *HazardReactor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HazardReactor{
		layers: layers,
		reloc:  reloc,
		logger: logger,
	}
}

// OnPlayerMoved checks the player's new cell against the bullet layer and
// then the fire layer, relocating the player on the first match. Malformed
// events are logged and dropped.
func (h *HazardReactor) OnPlayerMoved(playerID string, at MapCell) {
	if err := uuid.Validate(playerID); err != nil {
		h.logger.Warnf("Dropped position event with malformed player id %q: %v", playerID, err)
		return
	}
	if at.Map == "" {
		h.logger.Warnf("Dropped position event for player %s without a map", playerID)
		return
	}

	switch {
	case h.layers.CellOccupied(at, LayerBullets):
		h.logger.Infof("Player %s stepped onto a bullet at (%d, %d) on %s", playerID, at.X, at.Y, at.Map)
	case h.layers.CellOccupied(at, LayerFire):
		h.logger.Infof("Player %s stepped into the fire at (%d, %d) on %s", playerID, at.X, at.Y, at.Map)
	default:
		return
	}

	Relocate(h.reloc, playerID, at.Map)
}
