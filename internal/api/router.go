package api

import (
	"encoding/json"
	"net/http"

	"hoopsim/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EngineInterface is the subset of *game.Engine the HTTP/WS layer depends
// on. Kept as an interface so handlers can be exercised against a fake
// engine in tests.
type EngineInterface interface {
	CreateGame(id string, seed uint32, home, away *game.Team) (*game.ManagedGame, error)
	GetGame(id string) (*game.ManagedGame, bool)
	RemoveGame(id string)
	RunTicks(id string, n int) (int, error)
	ListGames() []string
	Leaderboard() *game.Leaderboard
}

// RouterConfig wires a router's dependencies. No auth or persistence
// layer: the router only ever talks to the multi-game engine.
type RouterConfig struct {
	Engine          EngineInterface
	RateLimiter     *IPRateLimiter
	RateLimitConfig RateLimitConfig
	CORSOrigins     []string
	WSHub           *WebSocketHub
	DisableLogging  bool
}

type routerHandlers struct {
	engine EngineInterface
	wsHub  *WebSocketHub
}

// NewRouter builds the chi.Mux serving the Host API. Pure factory: no
// global state, no side effects beyond route registration.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = AllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := &routerHandlers{engine: cfg.Engine, wsHub: cfg.WSHub}

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", h.handleCreateGame)
		r.Get("/", h.handleListGames)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/state", h.handleGetState)
			r.Get("/boxscore", h.handleGetBoxScore)
			r.Get("/playbyplay", h.handleGetPlayByPlay)
			r.Post("/tactics", h.handlePostTactics)
			r.Post("/run", h.handlePostRun)
			r.Delete("/", h.handleDeleteGame)
		})
	})
	r.Get("/api/leaderboard", h.handleGetLeaderboard)
	r.Get("/ws/games/{gameID}", h.handleWebSocket)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
