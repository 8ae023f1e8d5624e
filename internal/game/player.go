package game

import (
	"fmt"
	"math"

	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

// SimPlayer is one active on-court player: a fixed reference to the static
// roster entry plus the mutable per-tick state (position, fatigue, ball
// possession, slot/role assignment) the engine updates every tick.
type SimPlayer struct {
	ID       string // "team-index", e.g. "0-2"
	TeamIdx  int    // 0 or 1
	Index    int    // 0-4 within the team
	Static   *Player

	Pos       geom.Vec2
	Vel       geom.Vec2
	TargetPos geom.Vec2
	HasBall   bool
	Fatigue   float64 // 0..1

	HasSlot     bool
	Slot        court.Slot
	HasRole     bool
	Role        OffenseRole

	IsCutting          bool
	IsScreening        bool
	IsDefensiveSliding bool
	IsDribbling        bool
	CallingForBall     bool // set by ActionCallForBall, read by scorePassTarget

	CatchTimer  float64 // seconds until ready to act after catching a pass
	SprintTimer float64 // continuous sprint seconds

	world *worldBounds
}

type worldBounds struct{ minX, minY, maxX, maxY float64 }

// NewSimPlayer constructs a SimPlayer bound to a static roster entry.
func NewSimPlayer(teamIdx, index int, static *Player, spawn geom.Vec2) *SimPlayer {
	return &SimPlayer{
		ID:        fmt.Sprintf("%d-%d", teamIdx, index),
		TeamIdx:   teamIdx,
		Index:     index,
		Static:    static,
		Pos:       spawn,
		TargetPos: spawn,
		world:     &worldBounds{court.MinX, court.MinY, court.MaxX, court.MaxY},
	}
}

// ClearTransientFlags clears the per-tick action flags. Slot/role/
// ball-handling state persists across ticks; these don't.
func (p *SimPlayer) ClearTransientFlags() {
	p.IsCutting = false
	p.IsScreening = false
	p.IsDefensiveSliding = false
	p.CallingForBall = false
}

// UpdateKinematics advances position/velocity for one tick, dt = 1/60s by
// convention: seeks TargetPos with an acceleration/speed model driven by
// athletic ratings and action state, then resolves pairwise overlap with
// nearby players.
func (p *SimPlayer) UpdateKinematics(dt float64, others []*SimPlayer) {
	d := geom.Dist(p.TargetPos, p.Pos)

	if d < 0.3 {
		p.Vel = p.Vel.Scale(0.8)
	} else {
		baseSpeed := (4 + float64(p.Static.Athletic.Speed)/100*18) * (1 - 0.3*p.Fatigue)

		mult := 1.0
		if p.IsDefensiveSliding {
			mult *= 0.6 + 0.2*(float64(p.Static.Defense.Perimeter)/100)
		}
		if p.IsCutting {
			mult *= 1.2
		}
		if p.IsDribbling {
			mult *= 0.8
		}
		if p.CatchTimer > 0 {
			mult *= 0.3
		}
		if d > 25 {
			mult *= 1.15
		}
		if d < 5 {
			mult *= 0.7
		}
		if p.SprintTimer > 4 {
			mult *= 0.85
		}

		speed := baseSpeed * mult
		dir := geom.Normalize(p.TargetPos.Sub(p.Pos))
		desiredVel := dir.Scale(speed)

		accel := 5 + float64(p.Static.Athletic.Acceleration)/100*15
		blend := math.Min(1, accel*dt*0.4)
		p.Vel = p.Vel.Add(desiredVel.Sub(p.Vel).Scale(blend))
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	// Pairwise collision repulsion: push apart any two players closer than
	// 2.5 ft rather than let them overlap.
	for _, other := range others {
		if other == p {
			continue
		}
		dist := geom.Dist(p.Pos, other.Pos)
		if dist > 0 && dist < 2.5 {
			push := geom.Normalize(p.Pos.Sub(other.Pos)).Scale((2.5 - dist) * 0.3 * dt)
			p.Pos = p.Pos.Add(push)
		}
	}

	p.Pos = court.ClampToCourt(p.Pos)

	p.Fatigue += dt * 0.001 * (1 - float64(p.Static.Athletic.Stamina)/100)
	if p.Fatigue > 1 {
		p.Fatigue = 1
	}

	if d > 25 {
		p.SprintTimer += dt
	} else if d < 5 {
		p.SprintTimer = math.Max(0, p.SprintTimer-dt*2)
	}
}

// DistTo returns the distance from p to a point.
func (p *SimPlayer) DistTo(target geom.Vec2) float64 {
	return geom.Dist(p.Pos, target)
}
