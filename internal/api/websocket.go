package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal bounds total concurrent WebSocket connections
	// across all games.
	MaxWSConnectionsTotal = 500
	// MaxWSConnectionsPerIP bounds connections from a single address.
	MaxWSConnectionsPerIP = 10

	wsBroadcastInterval = 100 * time.Millisecond // 10 Hz; snapshots are published every tick, so each broadcast sends the latest one
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return IsAllowedOrigin(r.Header.Get("Origin"))
	},
}

// wsClient is one subscriber to a single game's snapshot stream.
type wsClient struct {
	conn   *websocket.Conn
	ip     string
	gameID string
}

// WebSocketHub fans out each game's published snapshots to every client
// subscribed to that game id, keeping a separate client set per game so
// unrelated games don't share bandwidth.
type WebSocketHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*wsClient // all connections
	byGame  map[string]map[*websocket.Conn]bool

	register   chan *wsClient
	unregister chan *websocket.Conn

	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketHub creates an empty hub.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]*wsClient),
		byGame:     make(map[string]map[*websocket.Conn]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Run processes register/unregister events until stopped; stopChan is
// closed by the caller to shut the loop down (e.g. server.Stop()).
func (h *WebSocketHub) Run(stopChan <-chan struct{}) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.conn] = c
			if h.byGame[c.gameID] == nil {
				h.byGame[c.gameID] = make(map[*websocket.Conn]bool)
			}
			h.byGame[c.gameID][c.conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[conn]; ok {
				delete(h.byGame[c.gameID], conn)
				delete(h.clients, conn)
				h.wsLimiter.Release(c.ip)
			}
			h.mu.Unlock()
			conn.Close()

		case <-stopChan:
			return
		}
	}
}

// ClientCount returns the number of currently connected WebSocket clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcastToGame sends data to every client subscribed to gameID.
func (h *WebSocketHub) broadcastToGame(gameID string, data []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.byGame[gameID]))
	for conn := range h.byGame[gameID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.unregister <- conn
		}
	}
	IncrementWSMessages(len(conns))
}

// StartBroadcastLoop periodically pushes each running game's latest
// snapshot to its subscribers, iterating every engine-managed game each
// tick of the broadcast ticker.
func (h *WebSocketHub) StartBroadcastLoop(engine EngineInterface, stopChan <-chan struct{}) {
	ticker := time.NewTicker(wsBroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, id := range engine.ListGames() {
				mg, ok := engine.GetGame(id)
				if !ok {
					continue
				}
				data, err := json.Marshal(mg.Snapshot())
				if err != nil {
					continue
				}
				h.broadcastToGame(id, data)
			}
		case <-stopChan:
			return
		}
	}
}

// handleWebSocket handles GET /ws/games/{gameID}: upgrades to a WebSocket
// and streams that game's published snapshots until the client disconnects.
// Once the game is removed no more snapshots are sent, but the connection
// stays open until the client closes it.
func (h *routerHandlers) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if _, ok := h.engine.GetGame(gameID); !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if h.wsHub == nil {
		writeError(w, http.StatusServiceUnavailable, "streaming disabled")
		return
	}

	ip := GetClientIP(r)

	h.wsHub.mu.RLock()
	total := len(h.wsHub.clients)
	h.wsHub.mu.RUnlock()
	if total >= MaxWSConnectionsTotal {
		RecordConnectionRejected("total_limit")
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.wsHub.wsLimiter.Allow(ip) {
		RecordConnectionRejected("per_ip_limit")
		http.Error(w, "too many connections from this address", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.wsHub.wsLimiter.Release(ip)
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{conn: conn, ip: ip, gameID: gameID}
	h.wsHub.register <- client
	UpdateWSConnections(h.wsHub.ClientCount())

	go func() {
		defer func() {
			h.wsHub.unregister <- conn
			UpdateWSConnections(h.wsHub.ClientCount())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
