package api

import (
	"log"
	"net/http"

	"hoopsim/internal/game"
)

// Server is the HTTP API server with WebSocket support: it combines the
// chi router with a WebSocket hub for real-time snapshot streaming, backed
// by the multi-game *game.Engine. No auth or persistence layer; the API
// surface is games, their state, and tactics.
type Server struct {
	engine      *game.Engine
	router      http.Handler
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
	stopChan    chan struct{}
}

// NewServer creates a new API server with default production configuration.
//
// IMPORTANT: Background workers do NOT start until Start() is called.
// This enables testing by allowing the server to be constructed without
// starting goroutines or opening network listeners.
//
// For testing HTTP endpoints without WebSocket support, use NewRouter() directly.
func NewServer(engine *game.Engine) *Server {
	s := &Server{
		engine:   engine,
		wsHub:    NewWebSocketHub(),
		stopChan: make(chan struct{}),
	}

	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Engine:      engine,
		RateLimiter: s.rateLimiter,
		WSHub:       s.wsHub,
	})

	return s
}

// Start begins the HTTP server AND starts background workers.
// This is the ONLY method that starts goroutines or opens network listeners.
//
// Call this method only once. To stop the server, call Stop().
func (s *Server) Start(addr string) error {
	go s.wsHub.Run(s.stopChan)
	go s.wsHub.StartBroadcastLoop(s.engine, s.stopChan)

	log.Printf("API server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
// Use this in integration tests instead of calling Start().
//
// Example:
//
//	server := api.NewServer(engine)
//	ts := httptest.NewServer(server.Router())
//	defer ts.Close()
//	resp, _ := http.Get(ts.URL + "/api/games")
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop performs graceful shutdown of background workers.
// Call this before process exit to ensure clean cleanup.
func (s *Server) Stop() {
	close(s.stopChan)
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
