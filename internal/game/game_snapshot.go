package game

import (
	"sync/atomic"
	"time"
)

// ResourceLimits caps the size of a published snapshot. A game always has
// exactly ten on-court players, so only the play-by-play backlog needs a cap.
type ResourceLimits struct {
	MaxPlayByPlay int // events copied into a snapshot's recent-events window
}

// DefaultLimits provides production-safe defaults.
var DefaultLimits = ResourceLimits{
	MaxPlayByPlay: 20,
}

// PlayerSnapshot is an immutable copy of one player's rendering-relevant
// state. Value type, not a pointer, so a published snapshot can never be
// mutated by the next tick.
type PlayerSnapshot struct {
	ID      string
	Name    string
	Pos     string // position label, e.g. "PG"
	X, Y    float64
	VX, VY  float64
	HasBall bool
	Fatigue float64
	Slot    string
	Role    string

	IsCutting   bool
	IsScreening bool
	IsSliding   bool
}

// BallSnapshot is an immutable copy of the ball's rendering-relevant state.
type BallSnapshot struct {
	X, Y, Z    float64
	CarrierIdx int
	InFlight   bool
	Bouncing   bool
}

// PlayByPlaySnapshot is one recent logged event, decoded for display.
type PlayByPlaySnapshot struct {
	TickNum  uint64
	Type     string
	PlayerID string
}

// BoxScoreSnapshot mirrors PlayerBoxScore for external consumption.
type BoxScoreSnapshot = PlayerBoxScore

// GameSnapshot is a complete immutable copy of one game's renderable state,
// published once per tick for API/WebSocket consumers. All slices are
// pre-allocated and capped so a snapshot never grows unbounded.
type GameSnapshot struct {
	Sequence   uint64    // monotonic sequence for ordering
	Timestamp  time.Time // when the snapshot was built
	TickNumber uint64    // game tick this represents
	RNGSeed    uint32    // seed, for deterministic replay

	Phase      string
	Quarter    int
	GameClock  float64
	ShotClock  float64
	Possession int
	ScoreHome  int
	ScoreAway  int
	GameOver   bool

	Players  []PlayerSnapshot // always 10, pre-allocated
	Ball     BallSnapshot
	BoxScore [10]BoxScoreSnapshot

	RecentEvents []PlayByPlaySnapshot
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure during ticking.
// Triple-buffered for lock-free producer (the tick goroutine) / consumer
// (API handlers) access.
type SnapshotPool struct {
	snapshots [3]GameSnapshot // triple buffer
	limits    ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices.
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}

	for i := 0; i < 3; i++ {
		pool.snapshots[i] = GameSnapshot{
			Players:      make([]PlayerSnapshot, 0, 10),
			RecentEvents: make([]PlayByPlaySnapshot, 0, limits.MaxPlayByPlay),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the
// tick loop). Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	snap.Players = snap.Players[:0]
	snap.RecentEvents = snap.RecentEvents[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks the write complete and advances the read pointer.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer only). Returns
// a zero-value snapshot if nothing has been published yet.
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// GetLimits returns the resource limits this pool was built with.
func (p *SnapshotPool) GetLimits() ResourceLimits {
	return p.limits
}

// BuildSnapshot populates dst from the current GameState. Called once per
// tick by the engine's owning goroutine; dst must come from AcquireWrite.
func BuildSnapshot(g *GameState, dst *GameSnapshot) {
	dst.TickNumber = g.TickCount
	dst.RNGSeed = g.Seed
	dst.Phase = g.Phase.String()
	dst.Quarter = g.Quarter
	dst.GameClock = g.GameClock
	dst.ShotClock = g.ShotClock
	dst.Possession = g.Possession
	dst.ScoreHome = g.Score[0]
	dst.ScoreAway = g.Score[1]
	dst.GameOver = g.GameOver

	for _, p := range g.Players {
		role := ""
		if p.HasRole {
			role = p.Role.String()
		}
		slot := ""
		if p.HasSlot {
			slot = p.Slot.String()
		}
		dst.Players = append(dst.Players, PlayerSnapshot{
			ID: p.ID, Name: p.Static.Name, Pos: p.Static.Pos.String(),
			X: p.Pos.X, Y: p.Pos.Y, VX: p.Vel.X, VY: p.Vel.Y,
			HasBall: p.HasBall, Fatigue: p.Fatigue,
			Slot: slot, Role: role,
			IsCutting: p.IsCutting, IsScreening: p.IsScreening, IsSliding: p.IsDefensiveSliding,
		})
	}

	dst.Ball = BallSnapshot{
		X: g.Ball.Pos.X, Y: g.Ball.Pos.Y, Z: g.Ball.Z,
		CarrierIdx: g.Ball.CarrierIdx,
		InFlight:   g.Ball.InFlight(), Bouncing: g.Ball.IsBouncing(),
	}
	dst.BoxScore = g.BoxScore

	if g.EventLog != nil {
		for _, e := range g.EventLog.RecentEvents(cap(dst.RecentEvents)) {
			dst.RecentEvents = append(dst.RecentEvents, PlayByPlaySnapshot{
				TickNum: e.TickNum, Type: e.Type.String(), PlayerID: e.PlayerID,
			})
		}
	}
}
