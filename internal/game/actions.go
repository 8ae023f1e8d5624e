package game

import (
	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

// nearestDefenderDist returns the distance from pos to the closest defender
// on the team opposing offTeam, and that defender's index.
func nearestDefenderDist(g *GameState, pos geom.Vec2, offTeam int) (float64, int) {
	defTeam := 1 - offTeam
	best := 1e9
	bestIdx := -1
	for _, i := range offenseIndices(defTeam) {
		d := g.Players[i].DistTo(pos)
		if d < best {
			best = d
			bestIdx = i
		}
	}
	return best, bestIdx
}

// isOpen reports whether pos is "open": nearest defender > 6 ft.
func isOpen(g *GameState, pos geom.Vec2, offTeam int) bool {
	d, _ := nearestDefenderDist(g, pos, offTeam)
	return d > 6
}

// isWideOpen reports "wide open": nearest defender > 8 ft.
func isWideOpen(g *GameState, pos geom.Vec2, offTeam int) bool {
	d, _ := nearestDefenderDist(g, pos, offTeam)
	return d > 8
}

// laneBlocked reports whether any defender sits within 2.5 ft of the
// segment from `from` to `to`.
func laneBlocked(g *GameState, from, to geom.Vec2, offTeam int) bool {
	seg := geom.Segment{From: from, To: to}
	for _, i := range offenseIndices(1 - offTeam) {
		if geom.DistanceToLine(g.Players[i].Pos, seg) < 2.5 {
			return true
		}
	}
	return false
}

// shotRangeSkill returns a player's base shooting skill for the range their
// shot distance falls into, and the basePct for that range.
func shotRangeSkill(p *SimPlayer, dist float64) (skill int, basePct float64) {
	switch {
	case dist < 5:
		return p.Static.Finishing.Layup, 0.60
	case dist <= 22:
		return p.Static.Shooting.MidRange, 0.45
	default:
		return p.Static.Shooting.ThreePoint, 0.35
	}
}

// tacticAdvantage is the 5x5 offense-vs-defense advantage table: a
// fractional delta applied multiplicatively to shot probability.
// Values are small, hand-tuned biases: tactics counter or reinforce specific
// defensive schemes the way NBA coaching staffs expect them to.
func tacticAdvantage(off OffenseTactic, def DefenseTactic) float64 {
	table := [5][5]float64{
		// man,   zone,  press, gamble, fortress
		{0.00, -0.05, 0.05, 0.10, -0.08}, // fast_break
		{0.00, 0.00, 0.02, 0.05, -0.03},  // motion
		{0.02, 0.08, -0.05, 0.00, 0.10},  // shoot
		{0.05, -0.10, 0.02, 0.08, -0.10}, // inside
		{0.08, -0.05, 0.10, 0.12, -0.05}, // iso
	}
	return table[int(off)][int(def)]
}

// shotProbability computes a shot's make probability.
func shotProbability(g *GameState, shooter *SimPlayer, dist float64, contestDist float64, offTactic OffenseTactic, defTactic DefenseTactic) float64 {
	skill, basePct := shotRangeSkill(shooter, dist)
	skillMod := 0.5 + float64(skill)/100
	if shooter.Static.IsSuperstar && skillMod < 0.8 {
		skillMod = 0.8
	}

	contestMod := 1.0
	switch {
	case contestDist < 3:
		contestMod = 0.6
	case contestDist < 5:
		contestMod = 0.8
	}

	pct := basePct * skillMod * contestMod
	if g.ShotClock < 3 {
		pct *= 0.85
	}
	pct *= 1 + tacticAdvantage(offTactic, defTactic)
	return geom.Clamp1D(pct, 0, 1)
}

// foulProbability returns the probability a contested shot draws a shooting
// foul.
func foulProbability(dist, contestDist float64) float64 {
	if contestDist > 6 {
		return 0
	}
	var base float64
	switch {
	case dist < 5:
		base = 0.15
	case dist < 10:
		base = 0.08
	case dist <= 22:
		base = 0.03
	default:
		base = 0.04
	}
	if contestDist < 3 {
		base *= 1.5
	}
	return base
}

// ShotOutcome is the resolved result of a shot attempt, decided at release
// and applied to score/box score/phase when the flight completes.
type ShotOutcome struct {
	ShooterIdx  int
	DefenderIdx int
	Made        bool
	Points      int
	Distance    float64
	Fouled      bool
	AndOne      bool
	MissType    MissType
	ContestDist float64
}

// AttemptShot runs a shot attempt by shooterIdx toward the offensive
// team's basket: probability roll, foul roll, box-score attempt tally, and
// dispatch into the ball's shot flight. Resolution (points, rebound/
// free-throw dispatch) happens in ResolveShot once the flight completes.
func AttemptShot(g *GameState, shooterIdx int) {
	shooter := g.Players[shooterIdx]
	dir := g.AttackDir(shooter.TeamIdx)
	basket := court.Basket(dir)
	dist := shooter.DistTo(basket)
	contestDist, defenderIdx := nearestDefenderDist(g, shooter.Pos, shooter.TeamIdx)

	team := g.Teams[shooter.TeamIdx]
	opp := g.Teams[1-shooter.TeamIdx]
	pct := shotProbability(g, shooter, dist, contestDist, team.Tactics.Offense, opp.Tactics.Defense)

	made := g.RNG.Float64() < pct
	fouled := g.RNG.Float64() < foulProbability(dist, contestDist)
	points := court.ReleaseDistancePoints(dist)

	out := ShotOutcome{ShooterIdx: shooterIdx, DefenderIdx: defenderIdx, Distance: dist, ContestDist: contestDist, Fouled: fouled}

	bs := &g.BoxScore[shooterIdx]
	bs.FGAttempted++
	if points == 3 {
		bs.ThreePAttempted++
	}

	if made {
		out.Made = true
		out.Points = points
		out.AndOne = fouled
		g.Ball.StartShot(shooter.Pos, basket, true, dist, MissNone)
	} else {
		out.MissType = pickMissType(g, dist, contestDist)
		g.Ball.StartShot(shooter.Pos, basket, false, dist, out.MissType)
		if out.MissType == MissBlocked && defenderIdx >= 0 {
			g.BoxScore[defenderIdx].Blocks++
		}
	}

	shooter.IsDribbling = false
	shooter.HasBall = false
	g.PendingShot = &out
	setPhase(g, PhaseShooting)

	contestTag := "open"
	if contestDist < 3 {
		contestTag = "tight"
	} else if contestDist < 5 {
		contestTag = "contested"
	}
	logPlayByPlay(g, EventTypeShotAttempt, shooter.ID, ShotAttemptPayload{
		ShooterID: shooter.ID, Distance: dist, ContestTag: contestTag,
		Quarter: g.Quarter, ScoreHome: g.Score[0], ScoreAway: g.Score[1],
	})
}

// ResolveShot applies a completed shot's outcome: score, box score, fouls,
// and the phase transition to free-throw, rebound, or inbound (covers both
// the AND-ONE and missed-and-fouled cases).
func ResolveShot(g *GameState) {
	out := g.PendingShot
	if out == nil {
		return
	}
	g.PendingShot = nil
	shooter := g.Players[out.ShooterIdx]
	bs := &g.BoxScore[out.ShooterIdx]

	if out.Fouled && out.DefenderIdx >= 0 {
		g.BoxScore[out.DefenderIdx].Fouls++
		fouler := g.Players[out.DefenderIdx]
		attempts := court.ReleaseDistancePoints(out.Distance)
		if out.Made {
			attempts = 1
		}
		logPlayByPlay(g, EventTypeFoul, fouler.ID, FoulPayload{
			FoulerID: fouler.ID, ShooterID: shooter.ID, AndOne: out.Made,
			Attempts: attempts, Quarter: g.Quarter,
		})
	}

	if out.Made {
		bs.FGMade++
		if out.Points == 3 {
			bs.ThreePMade++
		}
		bs.Points += out.Points
		g.AddScore(shooter.TeamIdx, out.Points)

		if g.LastPassFrom >= 0 && g.LastPassFrom != out.ShooterIdx && g.GameTime-g.LastPassTime < 3.0 {
			g.BoxScore[g.LastPassFrom].Assists++
		}

		logPlayByPlay(g, EventTypeMake, shooter.ID, MakePayload{
			ShooterID: shooter.ID, Points: out.Points, AndOne: out.Fouled,
			Quarter: g.Quarter, ScoreHome: g.Score[0], ScoreAway: g.Score[1],
		})

		if out.Fouled {
			StartFreeThrows(g, out.ShooterIdx, 1) // and-one
			return
		}
		ClearPlay(g)
		ChangePossession(g)
		setPhase(g, PhaseInbound)
		return
	}

	logPlayByPlay(g, EventTypeMiss, shooter.ID, MissPayload{
		ShooterID: shooter.ID, MissType: out.MissType.String(), Fouled: out.Fouled, Quarter: g.Quarter,
	})

	if out.Fouled {
		StartFreeThrows(g, out.ShooterIdx, court.ReleaseDistancePoints(out.Distance))
		return
	}

	basket := court.Basket(g.AttackDir(shooter.TeamIdx))
	target := reboundTarget(g, out.MissType, basket)
	g.Ball.StartBounce(shooter.Pos, target)
	setPhase(g, PhaseRebound)
}

// reboundTarget draws a bounce landing point based on the miss type.
func reboundTarget(g *GameState, miss MissType, basket geom.Vec2) geom.Vec2 {
	jitter := func(spread float64) geom.Vec2 {
		return geom.Vec2{X: (g.RNG.Float64()*2 - 1) * spread, Y: (g.RNG.Float64()*2 - 1) * spread}
	}
	switch miss {
	case MissAirball:
		return basket.Add(jitter(2))
	case MissRimOut:
		return basket.Add(jitter(8))
	case MissBackIron:
		return basket.Add(geom.Vec2{X: 4, Y: 0}).Add(jitter(4))
	case MissFrontRim:
		return basket.Add(geom.Vec2{X: -4, Y: 0}).Add(jitter(4))
	default: // MissBlocked
		return basket.Add(jitter(10))
	}
}

func pickMissType(g *GameState, dist, contestDist float64) MissType {
	if contestDist < 2.5 && g.RNG.Float64() < 0.3 {
		return MissBlocked
	}
	roll := g.RNG.Float64()
	switch {
	case roll < 0.25:
		return MissAirball
	case roll < 0.5:
		return MissRimOut
	case roll < 0.75:
		return MissBackIron
	default:
		return MissFrontRim
	}
}

// AttemptPass dispatches a pass from passerIdx to targetIdx with the given
// PassType, and records passer state for the guard clock.
func AttemptPass(g *GameState, passerIdx, targetIdx int, pt PassType) {
	passer := g.Players[passerIdx]
	target := g.Players[targetIdx]
	g.Ball.StartPass(passer.Pos, target.Pos, pt, targetIdx)
	g.LastPassFrom = passerIdx
	g.LastPassTime = g.GameTime
	passer.HasBall = false
	HandoffBallHandlerRole(g, passerIdx, targetIdx)
}
