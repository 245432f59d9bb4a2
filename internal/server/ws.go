package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MarceloDChagas/Respira/internal/profile"
)

const writeWait = 5 * time.Second

// stateMessage is the envelope pushed to websocket clients.
type stateMessage struct {
	Type    string           `json:"type"`
	Payload profile.Snapshot `json:"payload"`
}

// Hub pushes the full state snapshot to every connected client after each
// successful mutation. Clients are read-only; inbound frames are drained and
// discarded.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   *log.Logger

	// last snapshot sent, replayed to clients on connect
	last    profile.Snapshot
	hasLast bool
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleWS upgrades the connection and registers the client. The current
// snapshot, when known, is sent immediately so late joiners do not wait for
// the next mutation.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	if h.hasLast {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(stateMessage{Type: "state", Payload: h.last}); err != nil {
			h.dropLocked(conn)
			h.mu.Unlock()
			return
		}
	}
	h.mu.Unlock()

	go h.readLoop(conn)
}

// Broadcast pushes a snapshot to every client, dropping the ones that fail.
func (h *Hub) Broadcast(snap profile.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = snap
	h.hasLast = true

	msg := stateMessage{Type: "state", Payload: snap}
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			h.dropLocked(conn)
		}
	}
}

// Prime seeds the hub with an initial snapshot so clients connecting before
// the first mutation still receive state.
func (h *Hub) Prime(snap profile.Snapshot) {
	h.mu.Lock()
	h.last = snap
	h.hasLast = true
	h.mu.Unlock()
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) dropLocked(conn *websocket.Conn) {
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			h.dropLocked(conn)
			h.mu.Unlock()
			return
		}
	}
}
