package game

import "hoopsim/internal/game/court"

const (
	quarterSeconds  = 12 * 60
	totalQuarters   = 4
	shotClockFull   = 24
)

// AttackDir returns the basket direction team attacks this quarter: teams
// switch ends every half, so team 0 attacks +1 in quarters 1-2 and -1 in
// quarters 3-4; team 1 is always the opposite.
func (g *GameState) AttackDir(team int) int {
	dir := 1
	if g.Quarter >= 3 {
		dir = -1
	}
	if team == 1 {
		dir = -dir
	}
	return dir
}

// AddScore credits team with points.
func (g *GameState) AddScore(team int, points int) {
	g.Score[team] += points
	for _, i := range offenseIndices(team) {
		g.BoxScore[i].PlusMinus += points
	}
	for _, i := range offenseIndices(1 - team) {
		g.BoxScore[i].PlusMinus -= points
	}
}

// ChangePossession flips the possession index and resets possession-scoped
// bookkeeping, so every phase transition starts from the same clean state.
func ChangePossession(g *GameState) {
	g.Possession = 1 - g.Possession
	g.DribbleTime = 0
	g.AdvanceClock = 0
	g.CrossedHalfCourt = false
	g.Turnover = false
	g.LastPassFrom = -1
	ClearPlay(g)
	g.Slots = make(map[court.Slot]int)
	g.Roles = make(map[int]OffenseRole)
	g.DefAssignments = make(map[int]int)
	if g.ShotClock <= 0 || g.ShotClock > shotClockFull {
		g.ShotClock = shotClockFull
	}
}

// advanceClocks steps the game clock and shot clock by dt, run every tick
// once the jump ball is decided.
func advanceClocks(g *GameState, dt float64) {
	if g.Phase == PhaseJumpball || !g.GameStarted {
		return
	}
	g.GameClock -= dt
	if g.ShotClock > 0 {
		g.ShotClock -= dt
	}
}

// checkQuarterEnd advances the quarter when the game clock reaches 0,
// resetting with alternating starting possession.
func checkQuarterEnd(g *GameState) {
	if g.GameClock > 0 {
		return
	}
	logPlayByPlay(g, EventTypePeriodMarker, "", PeriodMarkerPayload{
		Quarter: g.Quarter, ScoreHome: g.Score[0], ScoreAway: g.Score[1],
	})
	g.Quarter++
	if g.Quarter > totalQuarters {
		g.GameOver = true
		return
	}
	g.GameClock = quarterSeconds
	g.ShotClock = shotClockFull
	if g.Quarter%2 == 0 {
		g.Possession = 1
	} else {
		g.Possession = 0
	}
	ClearPlay(g)
	g.Slots = make(map[court.Slot]int)
	g.Roles = make(map[int]OffenseRole)
	g.DefAssignments = make(map[int]int)
	g.CrossedHalfCourt = false
	g.AdvanceClock = 0
	setPhase(g, PhaseInbound)
}

// checkViolations fires the shot-clock and backcourt violations.
func checkViolations(g *GameState) {
	if !g.GameStarted || g.Phase == PhaseJumpball || g.Phase == PhaseFreeThrow {
		return
	}
	if g.ShotClock <= 0 {
		g.Turnover = true
		logPlayByPlay(g, EventTypeTurnover, "", TurnoverPayload{Reason: "shot_clock", Quarter: g.Quarter})
		ChangePossession(g)
		setPhase(g, PhaseInbound)
		return
	}
	if g.Phase != PhaseAdvance && g.CrossedHalfCourt {
		var handlerIdx int = -1
		for _, i := range offenseIndices(g.Possession) {
			if g.Players[i].HasBall {
				handlerIdx = i
			}
		}
		if handlerIdx != -1 {
			dir := g.AttackDir(g.Possession)
			halfCourtX := court.Width / 2
			handler := g.Players[handlerIdx]
			backcourt := (dir > 0 && handler.Pos.X < halfCourtX) || (dir < 0 && handler.Pos.X > halfCourtX)
			if backcourt {
				g.Turnover = true
				logPlayByPlay(g, EventTypeTurnover, handler.ID, TurnoverPayload{PlayerID: handler.ID, Reason: "backcourt", Quarter: g.Quarter})
				ChangePossession(g)
				setPhase(g, PhaseInbound)
			}
		}
	}
}
