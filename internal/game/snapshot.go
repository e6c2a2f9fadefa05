package game

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Hub fans layer and player updates out to every connected client. Sends
// are msgpack-encoded once per broadcast and never block: a client whose
// send buffer is full misses the update and catches up on the next full
// snapshot.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *zap.SugaredLogger
}

// NewHub creates a hub with no clients.
func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Infof("Client registered, %d connected", count)
}

// Unregister removes a client and closes its send channel. Unregistering a
// client twice is safe.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, exists := h.clients[client]
	if exists {
		delete(h.clients, client)
		close(client.Send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if exists {
		h.logger.Infof("Client unregistered, %d connected", count)
	}
}

// PublishLayerSnapshot replaces the named layer of a map on every client.
func (h *Hub) PublishLayerSnapshot(mapName, layer string, cells []Cell) {
	h.broadcast(LayerMsg{Type: MsgTypeLayer, Map: mapName, Layer: layer, Full: true, Cells: cells})
}

// PublishLayerDelta merges cells into the named layer of a map on every
// client.
func (h *Hub) PublishLayerDelta(mapName, layer string, cells []Cell) {
	h.broadcast(LayerMsg{Type: MsgTypeLayer, Map: mapName, Layer: layer, Cells: cells})
}

// PublishPlayer notifies clients that a player joined, moved, or left.
func (h *Hub) PublishPlayer(p Player, forced, left bool) {
	h.broadcast(PlayerMsg{
		Type:   MsgTypePlayer,
		ID:     p.ID,
		Name:   p.Name,
		Map:    p.Map,
		X:      p.X,
		Y:      p.Y,
		Forced: forced,
		Left:   left,
	})
}

// broadcast delivers one message to every registered client.
func (h *Hub) broadcast(msg any) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		h.logger.Errorf("Error marshaling %T broadcast: %v", msg, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Channel full, skip this client
			h.logger.Debugf("Dropped %T update for slow client %s", msg, client.PlayerID)
		}
	}
}
