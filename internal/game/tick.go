package game

import "hoopsim/internal/game/geom"

// TickInterval is the fixed simulation step: 60 ticks per second.
const TickInterval = 1.0 / 60.0

// Tick advances state by exactly one simulated interval of 1/60s. The
// per-component order within a tick is fixed; the only channel of
// non-determinism is state.RNG.
func Tick(g *GameState) {
	if g.GameOver {
		return
	}
	dt := TickInterval

	g.PhaseTicks++
	g.GameTime += dt
	g.TickCount++

	if g.Phase != PhaseJumpball && g.GameStarted {
		advanceClocks(g, dt)
	}
	checkQuarterEnd(g)
	if g.GameOver {
		return
	}
	checkViolations(g)

	for _, p := range g.Players {
		if p.CatchTimer > 0 {
			p.CatchTimer -= dt
			if p.CatchTimer < 0 {
				p.CatchTimer = 0
			}
		}
	}

	if g.Ball.InFlight() {
		completed := g.Ball.AdvanceFlight(dt)
		for _, p := range g.Players {
			p.UpdateKinematics(dt, g.Players[:])
		}
		if completed {
			resolveCompletedFlight(g)
		}
		accrueMinutes(g, dt)
		return
	}
	if g.Ball.IsBouncing() {
		g.Ball.AdvanceBounce(dt)
	}

	RunPhase(g, dt)

	for _, p := range g.Players {
		p.UpdateKinematics(dt, g.Players[:])
	}

	for _, p := range g.Players {
		p.ClearTransientFlags()
	}

	if g.Ball.Carried() {
		carrier := g.Players[g.Ball.CarrierIdx]
		g.Ball.SyncToCarrier(carrier.Pos)
	}

	accrueMinutes(g, dt)
}

// resolveCompletedFlight dispatches a just-completed pass or shot flight.
func resolveCompletedFlight(g *GameState) {
	f := g.Ball.Flight
	if f == nil {
		return
	}
	if f.IsShot {
		g.Ball.Flight = nil
		ResolveShot(g)
		return
	}

	passerTeam := g.Players[f.PassTargetIdx].TeamIdx
	idx, target := closestTeammateToPoint(g, f.To, passerTeam)
	g.Ball.Flight = nil
	if target == nil {
		return
	}
	target.HasBall = true
	target.CatchTimer = 0.6 - 0.3*(float64(target.Static.Playmaking.BallHandling)/100)
	g.Ball.AttachToCarrier(idx, target.Pos)
}

// closestTeammateToPoint returns the offensive player on team closest to
// the pass's landing point, who becomes the new ball carrier.
func closestTeammateToPoint(g *GameState, point geom.Vec2, team int) (int, *SimPlayer) {
	best := -1
	var bestPlayer *SimPlayer
	bestDist := 1e9
	for _, i := range offenseIndices(team) {
		d := g.Players[i].DistTo(point)
		if d < bestDist {
			bestDist = d
			best = i
			bestPlayer = g.Players[i]
		}
	}
	return best, bestPlayer
}
