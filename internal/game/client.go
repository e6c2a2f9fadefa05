package game

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1024
)

// Client is one connected WebSocket session and, once its join command has
// been handled, the player behind it.
type Client struct {
	Conn     *websocket.Conn
	Send     chan []byte
	PlayerID string
	world    *World
	logger   *zap.SugaredLogger
}

// NewClient wraps an upgraded connection. The client controls no player
// until it joins.
func NewClient(conn *websocket.Conn, world *World, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		Conn:   conn,
		Send:   make(chan []byte, clientSendBuffer),
		world:  world,
		logger: logger,
	}
}

// ReadPump consumes commands from the connection until it closes, then
// drops the client from the world.
func (c *Client) ReadPump() {
	defer func() {
		c.world.DropClient(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warnf("WebSocket error: %v", err)
			}
			return
		}

		var cmd CommandMsg
		if err := msgpack.Unmarshal(data, &cmd); err != nil {
			c.logger.Warnf("Error unmarshaling command: %v", err)
			continue
		}
		c.handleCommand(cmd)
	}
}

// handleCommand routes one inbound command. Move and attack are ignored
// until the client has joined.
func (c *Client) handleCommand(cmd CommandMsg) {
	switch cmd.Type {
	case MsgTypeJoin:
		if c.PlayerID != "" {
			return // already joined
		}
		c.PlayerID = c.world.Join(c, cmd.Name)
	case MsgTypeMove:
		if c.PlayerID == "" {
			return
		}
		c.world.Move(c.PlayerID, Cell{X: cmd.X, Y: cmd.Y})
	case MsgTypeAttack:
		if c.PlayerID == "" {
			return
		}
		player, ok := c.world.Player(c.PlayerID)
		if !ok {
			return
		}
		c.world.Attack(c.PlayerID, MapCell{Map: player.Map, X: cmd.X, Y: cmd.Y}, Direction(cmd.Facing))
	default:
		c.logger.Warnf("Unknown command type %q", cmd.Type)
	}
}

// WritePump pushes queued messages and keepalive pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				c.logger.Warnf("Write error for client %s: %v", c.PlayerID, err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// send queues one encoded message for this client alone.
func (c *Client) send(msg any) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		c.logger.Errorf("Error marshaling %T message: %v", msg, err)
		return
	}

	select {
	case c.Send <- data:
	default:
		// Channel full, skip
		c.logger.Debugf("Dropped %T message for client %s", msg, c.PlayerID)
	}
}
