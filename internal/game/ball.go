package game

import (
	"math"

	"hoopsim/internal/game/geom"
)

// MissType classifies how a missed shot went off the rim.
type MissType int

const (
	MissNone MissType = iota
	MissAirball
	MissRimOut
	MissBackIron
	MissFrontRim
	MissBlocked
)

func (m MissType) String() string {
	switch m {
	case MissAirball:
		return "airball"
	case MissRimOut:
		return "rim_out"
	case MissBackIron:
		return "back_iron"
	case MissFrontRim:
		return "front_rim"
	case MissBlocked:
		return "blocked"
	default:
		return "none"
	}
}

// PassType classifies a pass's flight-height profile.
type PassType int

const (
	PassChest PassType = iota
	PassBounce
	PassLob
	PassOverhead
)

// Flight describes an in-progress ball-flight (pass or shot).
type Flight struct {
	From, To         geom.Vec2
	FromZ, PeakZ, EndZ float64
	Progress         float64 // 0..1
	Duration         float64 // seconds
	IsShot           bool
	ShotWillScore    bool
	ShotDist         float64
	MissType         MissType
	PassType         PassType
	PassTargetIdx    int
}

// Bounce describes a post-miss rebound bounce.
type Bounce struct {
	Active bool
	Origin geom.Vec2
	Target geom.Vec2
	T      float64 // elapsed bounce time, seconds
}

// Ball is the single game ball. CarrierIdx is an index into
// GameState.Players (-1 = no carrier), never a second owning pointer — the
// ball never holds its own reference to a *SimPlayer.
type Ball struct {
	Pos        geom.Vec2
	Z          float64
	CarrierIdx int

	Flight *Flight
	Bounce *Bounce
}

// NewBall creates a ball at center court, uncarried, grounded.
func NewBall(pos geom.Vec2) *Ball {
	return &Ball{Pos: pos, Z: 0, CarrierIdx: -1}
}

// InFlight reports whether the ball is mid-pass or mid-shot.
func (b *Ball) InFlight() bool { return b.Flight != nil }

// IsBouncing reports whether the ball is in its post-miss bounce.
func (b *Ball) IsBouncing() bool { return b.Bounce != nil && b.Bounce.Active }

// Carried reports whether a player currently holds the ball.
func (b *Ball) Carried() bool { return !b.InFlight() && !b.IsBouncing() && b.CarrierIdx >= 0 }

// classifyPassPeak returns (fromZ, peakZ, endZ) for the given pass type and
// distance, fixing each pass type's characteristic height arc.
func classifyPassPeak(pt PassType, dist float64) (fromZ, peakZ, endZ float64) {
	switch pt {
	case PassBounce:
		return 4, 2, 5
	case PassLob:
		return 7, 12 + 0.1*dist, 5
	case PassOverhead:
		return 8, 9 + 0.05*dist, 5
	default: // PassChest
		return 5, 5.5 + 0.02*dist, 5
	}
}

// StartPass begins a pass flight from the carrier toward target.
func (b *Ball) StartPass(from, to geom.Vec2, pt PassType, targetIdx int) {
	dist := geom.Dist(from, to)
	fromZ, peakZ, endZ := classifyPassPeak(pt, dist)
	b.CarrierIdx = -1
	b.Flight = &Flight{
		From: from, To: to,
		FromZ: fromZ, PeakZ: peakZ, EndZ: endZ,
		Duration:      0.15 + 0.012*dist,
		PassType:      pt,
		PassTargetIdx: targetIdx,
	}
}

// StartShot begins a shot flight from the shooter toward the basket.
func (b *Ball) StartShot(from, to geom.Vec2, willScore bool, dist float64, miss MissType) {
	b.CarrierIdx = -1
	b.Flight = &Flight{
		From: from, To: to,
		FromZ: 4, PeakZ: 10 + 0.3*dist, EndZ: 10,
		Duration:      0.6 + 0.02*dist,
		IsShot:        true,
		ShotWillScore: willScore,
		ShotDist:      dist,
		MissType:      miss,
	}
}

// AdvanceFlight steps an in-progress flight by dt and reports whether it
// completed this tick. Position interpolates linearly in XY; height follows
// a quadratic Bézier through From/Peak/End.
func (b *Ball) AdvanceFlight(dt float64) (completed bool) {
	if b.Flight == nil {
		return false
	}
	f := b.Flight
	f.Progress += dt / f.Duration
	if f.Progress >= 1 {
		f.Progress = 1
		completed = true
	}
	t := f.Progress
	b.Pos = f.From.Add(f.To.Sub(f.From).Scale(t))
	it := 1 - t
	b.Z = it*it*f.FromZ + 2*it*t*f.PeakZ + t*t*f.EndZ
	return completed
}

// StartBounce begins the post-miss damped bounce toward a rebound landing
// spot.
func (b *Ball) StartBounce(origin, target geom.Vec2) {
	b.Flight = nil
	b.CarrierIdx = -1
	b.Bounce = &Bounce{Active: true, Origin: origin, Target: target}
}

// AdvanceBounce steps the damped bounce by dt; z = 10*e^(-3t)*|cos(6*pi*t)|.
func (b *Ball) AdvanceBounce(dt float64) {
	if b.Bounce == nil || !b.Bounce.Active {
		return
	}
	b.Bounce.T += dt
	t := b.Bounce.T
	b.Z = 10 * math.Exp(-3*t) * math.Abs(math.Cos(6*math.Pi*t))
	progress := math.Min(1, t/1.0)
	b.Pos = b.Bounce.Origin.Add(b.Bounce.Target.Sub(b.Bounce.Origin).Scale(progress))
}

// EndBounce stops the bounce (a rebound was secured).
func (b *Ball) EndBounce() {
	b.Bounce = nil
}

// AttachToCarrier makes idx the carrier; pos tracks the carrier at dribble
// height (pos = carrier pos, z = 4, for as long as the ball is carried).
func (b *Ball) AttachToCarrier(idx int, pos geom.Vec2) {
	b.Flight = nil
	b.Bounce = nil
	b.CarrierIdx = idx
	b.Pos = pos
	b.Z = 4
}

// SyncToCarrier keeps the ball glued to its carrier's position each tick.
func (b *Ball) SyncToCarrier(pos geom.Vec2) {
	if b.Carried() {
		b.Pos = pos
		b.Z = 4
	}
}
