// Package spectate streams live match frames to websocket clients.
package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"snake-battle/game"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// defaultWriteWait bounds a single frame write to one spectator.
const defaultWriteWait = time.Second

// Conn is one spectator session.
type Conn struct {
	ID        string
	ws        *websocket.Conn
	writeWait time.Duration
	mu        sync.Mutex // protects ws writes and closed
	closed    bool
}

func newConn(ws *websocket.Conn, writeWait time.Duration) *Conn {
	return &Conn{
		ID:        uuid.New().String(),
		ws:        ws,
		writeWait: writeWait,
	}
}

func (c *Conn) sendRaw(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(data)
}

// writeLocked writes one frame. The caller holds c.mu.
func (c *Conn) writeLocked(data []byte) error {
	if c.closed {
		return nil
	}
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.ws.Close()
}

// Hub is an http.Handler that upgrades requests to websocket and fans every
// broadcast frame out to all connected spectators.
type Hub struct {
	upgrader  websocket.Upgrader
	logger    log.Logger
	writeWait time.Duration

	mu    sync.RWMutex
	conns map[string]*Conn
	grid  [2]int
	last  []byte // newest frame, sent to late joiners
}

func NewHub(logger log.Logger) *Hub {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// spectators are read-only
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger:    logger,
		writeWait: defaultWriteWait,
		conns:     make(map[string]*Conn),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		_ = level.Warn(h.logger).Log("msg", "ws upgrade failed", "err", err)
		return
	}

	conn := newConn(ws, h.writeWait)
	if err := h.register(conn); err != nil {
		_ = level.Warn(h.logger).Log("msg", "greeting spectator", "conn", conn.ID, "err", err)
	}
	_ = level.Info(h.logger).Log("msg", "spectator connected", "conn", conn.ID, "remote", r.RemoteAddr)

	// Spectators never send anything meaningful; reading only detects the close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				_ = level.Debug(h.logger).Log("msg", "ws read error", "conn", conn.ID, "err", err)
			}
			break
		}
	}

	h.remove(conn.ID)
	conn.Close()
	_ = level.Info(h.logger).Log("msg", "spectator disconnected", "conn", conn.ID)
}

// register adds conn to the hub and greets it with the welcome and the newest
// frame. conn.mu is held across both, so a concurrent Broadcast queues behind
// the greeting instead of overtaking it.
func (h *Hub) register(conn *Conn) error {
	conn.mu.Lock()
	defer conn.mu.Unlock()

	h.mu.Lock()
	h.conns[conn.ID] = conn
	grid, last := h.grid, h.last
	h.mu.Unlock()

	welcome, err := json.Marshal(WelcomeMsg{Type: MsgWelcome, ID: conn.ID, Grid: grid})
	if err != nil {
		return fmt.Errorf("encoding welcome: %w", err)
	}
	if err := conn.writeLocked(welcome); err != nil {
		return err
	}
	if last != nil {
		return conn.writeLocked(last)
	}
	return nil
}

// Broadcast encodes snap once and sends it to every spectator. Connections
// that fail to accept the write are dropped.
func (h *Hub) Broadcast(snap game.Snapshot) {
	data, err := json.Marshal(NewStateMsg(snap))
	if err != nil {
		_ = level.Error(h.logger).Log("msg", "encoding frame", "err", err)
		return
	}

	h.mu.Lock()
	h.last = data
	h.grid = [2]int{snap.Grid.Width, snap.Grid.Height}
	conns := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.sendRaw(data); err != nil {
			_ = level.Debug(h.logger).Log("msg", "dropping spectator", "conn", c.ID, "err", err)
			h.remove(c.ID)
			c.Close()
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}
