package game

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// MaxConcurrentGames bounds how many games the engine will run at once.
const MaxConcurrentGames = 256

// MaxTicksPerRun bounds a single POST /run request so a caller can't force
// an unbounded synchronous tick loop.
const MaxTicksPerRun = 7200 // two simulated minutes at 60 TPS

// ManagedGame is one running game: its deterministic state plus the
// host-loop plumbing (ticker, snapshot pool, mutex) that drives it.
type ManagedGame struct {
	mu           sync.RWMutex
	ID           string
	State        *GameState
	snapshotPool *SnapshotPool

	ticker   *time.Ticker
	stopChan chan struct{}
	running  bool

	tickRate int
}

// Tick advances this game by exactly one tick and publishes a fresh
// snapshot, returning how long the tick took for observability. Safe to
// call from the engine's own ticker goroutine or from an API handler
// driving a bounded run.
func (mg *ManagedGame) Tick() time.Duration {
	mg.mu.Lock()
	defer mg.mu.Unlock()

	start := time.Now()
	Tick(mg.State)
	elapsed := time.Since(start)

	snap := mg.snapshotPool.AcquireWrite()
	BuildSnapshot(mg.State, snap)
	mg.snapshotPool.PublishWrite()

	return elapsed
}

// Snapshot returns the latest published snapshot for lock-free reads.
func (mg *ManagedGame) Snapshot() *GameSnapshot {
	return mg.snapshotPool.AcquireRead()
}

// WithState runs fn with the game's state locked for reading. Used by
// handlers that need a live view (box score) rather than the
// last-published snapshot.
func (mg *ManagedGame) WithState(fn func(*GameState)) {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	fn(mg.State)
}

// SetTactics changes a team's offense/defense tactic: offense takes effect
// at the next possession boundary, defense applies immediately, since
// GameState itself never special-cases when a tactic write lands.
func (mg *ManagedGame) SetTactics(team int, tactics Tactics) error {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	if team != 0 && team != 1 {
		return fmt.Errorf("invalid team index %d", team)
	}
	mg.State.Teams[team].Tactics = tactics
	return nil
}

// Engine owns the set of concurrently running games and the ticker
// goroutines that drive them.
type Engine struct {
	mu       sync.RWMutex
	games    map[string]*ManagedGame
	tickRate int

	leaderboard *Leaderboard // cross-game scoring leaders, keyed "gameID/playerID"

	onTick func(id string, g *ManagedGame, tickDuration time.Duration) // observability hook, e.g. metrics
}

// NewEngine creates an engine that ticks every running game at tickRate Hz.
func NewEngine(tickRate int) *Engine {
	return &Engine{
		games:       make(map[string]*ManagedGame),
		tickRate:    tickRate,
		leaderboard: NewLeaderboard(),
	}
}

// Leaderboard returns the engine's cross-game scoring leaderboard.
func (e *Engine) Leaderboard() *Leaderboard {
	return e.leaderboard
}

// refreshLeaderboard re-scores every player of mg on the engine-wide
// leaderboard. Called after each tick alongside snapshot publication.
func (e *Engine) refreshLeaderboard(mg *ManagedGame) {
	mg.WithState(func(g *GameState) {
		for _, p := range g.Players {
			key := mg.ID + "/" + p.ID
			bs := g.BoxScore[indexOfPlayer(g, p)]
			e.leaderboard.UpdatePlayer(key, bs.Points, bs.Turnovers)
		}
	})
}

// SetOnTick installs a callback invoked after every tick of every game,
// used by the observability layer to record tick-duration metrics.
func (e *Engine) SetOnTick(fn func(id string, g *ManagedGame, tickDuration time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// CreateGame constructs a new game, registers it, and starts its free-
// running ticker. Returns an error if the concurrent-game cap is reached.
func (e *Engine) CreateGame(id string, seed uint32, home, away *Team) (*ManagedGame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.games) >= MaxConcurrentGames {
		return nil, fmt.Errorf("concurrent game limit reached (%d)", MaxConcurrentGames)
	}
	if _, exists := e.games[id]; exists {
		return nil, fmt.Errorf("game %q already exists", id)
	}

	state := InitGameState(seed, home, away)
	state.EventLog.Start("")

	mg := &ManagedGame{
		ID:           id,
		State:        state,
		snapshotPool: NewSnapshotPool(DefaultLimits),
		stopChan:     make(chan struct{}),
		tickRate:     e.tickRate,
	}
	e.games[id] = mg

	e.startLocked(mg)
	log.Printf("game created: %s (seed=%d)", id, seed)
	return mg, nil
}

// startLocked begins mg's ticker goroutine. Caller must hold e.mu.
func (e *Engine) startLocked(mg *ManagedGame) {
	mg.mu.Lock()
	if mg.running {
		mg.mu.Unlock()
		return
	}
	mg.running = true
	mg.ticker = time.NewTicker(time.Second / time.Duration(mg.tickRate))
	mg.mu.Unlock()

	go func() {
		for {
			select {
			case <-mg.ticker.C:
				mg.mu.RLock()
				over := mg.State.GameOver
				mg.mu.RUnlock()
				if over {
					e.StopGame(mg.ID)
					return
				}
				elapsed := mg.Tick()
				e.refreshLeaderboard(mg)
				if e.onTick != nil {
					e.onTick(mg.ID, mg, elapsed)
				}
			case <-mg.stopChan:
				return
			}
		}
	}()
}

// StopGame halts a game's free-running ticker without removing it; its
// state and last snapshot remain readable.
func (e *Engine) StopGame(id string) {
	e.mu.RLock()
	mg, ok := e.games[id]
	e.mu.RUnlock()
	if !ok {
		return
	}

	mg.mu.Lock()
	defer mg.mu.Unlock()
	if !mg.running {
		return
	}
	mg.running = false
	mg.ticker.Stop()
	close(mg.stopChan)
}

// RemoveGame stops and forgets a game entirely.
func (e *Engine) RemoveGame(id string) {
	e.StopGame(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if mg, ok := e.games[id]; ok {
		mg.State.EventLog.Stop()
	}
	delete(e.games, id)
}

// GetGame looks up a game by id.
func (e *Engine) GetGame(id string) (*ManagedGame, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	mg, ok := e.games[id]
	return mg, ok
}

// RunTicks advances a stopped or paused game by up to n ticks synchronously,
// stopping early if the game ends. n is clamped to MaxTicksPerRun so a
// caller can't force an unbounded synchronous loop.
func (e *Engine) RunTicks(id string, n int) (int, error) {
	mg, ok := e.GetGame(id)
	if !ok {
		return 0, fmt.Errorf("game %q not found", id)
	}
	if n > MaxTicksPerRun {
		n = MaxTicksPerRun
	}
	if n < 0 {
		n = 0
	}

	ran := 0
	for i := 0; i < n; i++ {
		mg.mu.RLock()
		over := mg.State.GameOver
		mg.mu.RUnlock()
		if over {
			break
		}
		mg.Tick()
		ran++
	}
	if ran > 0 {
		e.refreshLeaderboard(mg)
	}
	return ran, nil
}

// ListGames returns the ids of every registered game.
func (e *Engine) ListGames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.games))
	for id := range e.games {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown stops every running game's ticker goroutine.
func (e *Engine) Shutdown() {
	e.mu.RLock()
	ids := make([]string, 0, len(e.games))
	for id := range e.games {
		ids = append(ids, id)
	}
	e.mu.RUnlock()

	for _, id := range ids {
		e.StopGame(id)
	}
}
