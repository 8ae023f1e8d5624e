package game

import (
	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

// decisionTickInterval is how often the full read-and-react rule table
// fires under normal dispatch: twice per second. The two immediate-reaction
// rules (layup range, superstar signatures) bypass this and run every tick.
const decisionTickInterval = 0.5

// derivePossessionStage maps the shot clock to a possession stage.
func derivePossessionStage(shotClock float64) PossessionStage {
	switch {
	case shotClock > 18:
		return StageEarly
	case shotClock > 10:
		return StageMid
	case shotClock > 4:
		return StageLate
	default:
		return StageDesperation
	}
}

func mustAttack(g *GameState) bool {
	return g.DribbleTime > 3 || g.ShotClock < 6
}

// RunDecisionEngine evaluates the rule-ordered read-and-react table for the
// ball handler at idx. Called after catchTimer elapses in action phase, or
// from a readAndReact RoleAction. Rules 1-2 (layup range, superstar
// signatures) are immediate reactions and run every call; rules 3-9 are
// gated to decisionTickInterval via g.LastDecisionTime so a handler camped
// in one spot isn't re-evaluated 60 times a second.
func RunDecisionEngine(g *GameState, idx int) {
	p := g.Players[idx]
	if !p.HasBall {
		return
	}
	dir := g.AttackDir(p.TeamIdx)
	basket := court.Basket(dir)
	dist := p.DistTo(basket)
	contestDist, _ := nearestDefenderDist(g, p.Pos, p.TeamIdx)
	open := contestDist > 6
	wideOpen := contestDist > 8
	attack := mustAttack(g)

	// Rule 1: layup range.
	if dist < 5 {
		AttemptShot(g, idx)
		return
	}

	// Rule 2: superstar signatures.
	if p.Static.IsSuperstar {
		if p.Static.Shooting.ThreePoint >= 90 && dist > 22 && dist < 30 && open {
			AttemptShot(g, idx)
			return
		}
		if p.Static.Finishing.Dunk >= 90 && dist < 20 {
			seg := geom.Segment{From: p.Pos, To: basket}
			blocked := false
			for _, di := range offenseIndices(1 - p.TeamIdx) {
				if geom.DistanceToLine(g.Players[di].Pos, seg) < 3 {
					blocked = true
					break
				}
			}
			if !blocked {
				p.TargetPos = basket
				p.IsCutting = true
				return
			}
		}
	}

	// Rules 3-9 only re-evaluate on the decision-tick cadence.
	if g.GameTime-g.LastDecisionTime < decisionTickInterval {
		return
	}
	g.LastDecisionTime = g.GameTime

	// Rule 3: wide-open catch-and-shoot.
	if wideOpen && g.DribbleTime < 0.5 && dist > 22 && dist < 27 {
		if p.Static.Shooting.ThreePoint >= 70 || g.RNG.Float64() < 0.7 {
			AttemptShot(g, idx)
			return
		}
	}

	// Rule 4: drive the open lane.
	defenderBetween := isDefenderBetween(g, p, basket, p.TeamIdx)
	if (contestDist > 4 || !defenderBetween) && dist > 5 && dist < 28 {
		jitter := (g.RNG.Float64()*2 - 1) * 1
		toward := geom.Normalize(basket.Sub(p.Pos))
		perp := geom.Vec2{X: -toward.Y, Y: toward.X}
		p.TargetPos = basket.Sub(toward.Scale(1)).Add(perp.Scale(jitter))
		p.IsCutting = true
		return
	}

	// Rule 5: aggressive mid-range.
	aggressive := g.DribbleTime > 1.5 || g.ShotClock < 6
	if aggressive && open && dist > 5 && dist < 22 {
		AttemptShot(g, idx)
		return
	}

	// Rule 6: open three.
	if open && dist > 22 && dist < 27 && (p.Static.Shooting.ThreePoint >= 65 || aggressive) {
		AttemptShot(g, idx)
		return
	}

	// Rule 7: create a better shot.
	if !attack {
		if target := findRoller(g, p.TeamIdx); target != nil && isOpen(g, target.Pos, p.TeamIdx) {
			passBall(g, idx, target)
			return
		}
		if target := findOpenShooter(g, p.TeamIdx); target != nil {
			passBall(g, idx, target)
			return
		}
		if !aggressive {
			if target := closestOpenTeammate(g, p); target != nil {
				passBall(g, idx, target)
				return
			}
		}
	}

	// Rule 8: must score.
	if dist < 25 {
		AttemptShot(g, idx)
		return
	}

	// Rule 9: drive toward basket.
	jitter := (g.RNG.Float64()*2 - 1) * 2
	toward := geom.Normalize(basket.Sub(p.Pos))
	perp := geom.Vec2{X: -toward.Y, Y: toward.X}
	p.TargetPos = basket.Add(perp.Scale(jitter))
	p.IsCutting = true
}

func isDefenderBetween(g *GameState, p *SimPlayer, basket geom.Vec2, offTeam int) bool {
	seg := geom.Segment{From: p.Pos, To: basket}
	for _, di := range offenseIndices(1 - offTeam) {
		if geom.DistanceToLine(g.Players[di].Pos, seg) < 3 {
			return true
		}
	}
	return false
}

func findRoller(g *GameState, offTeam int) *SimPlayer {
	dir := g.AttackDir(offTeam)
	basket := court.Basket(dir)
	for _, i := range offenseIndices(offTeam) {
		p := g.Players[i]
		if p.HasBall {
			continue
		}
		if p.DistTo(basket) < 12 {
			return p
		}
	}
	return nil
}

func findOpenShooter(g *GameState, offTeam int) *SimPlayer {
	dir := g.AttackDir(offTeam)
	basket := court.Basket(dir)
	for _, i := range offenseIndices(offTeam) {
		p := g.Players[i]
		if p.HasBall {
			continue
		}
		d := p.DistTo(basket)
		if d > 22 && d < 27 && p.Static.Shooting.ThreePoint >= 70 && isOpen(g, p.Pos, offTeam) {
			return p
		}
	}
	return nil
}

func closestOpenTeammate(g *GameState, from *SimPlayer) *SimPlayer {
	var best *SimPlayer
	bestDist := 1e9
	for _, i := range offenseIndices(from.TeamIdx) {
		p := g.Players[i]
		if p == from || p.HasBall {
			continue
		}
		if !isOpen(g, p.Pos, from.TeamIdx) {
			continue
		}
		d := from.DistTo(p.Pos)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// scorePassTarget ranks candidate as a pass target from passer: a blend of
// openness, proximity to the basket, shooting touch, and star power.
func scorePassTarget(g *GameState, passer, candidate *SimPlayer) float64 {
	dir := g.AttackDir(passer.TeamIdx)
	basket := court.Basket(dir)
	dist := candidate.DistTo(basket)
	contestDist, _ := nearestDefenderDist(g, candidate.Pos, passer.TeamIdx)

	score := contestDist * 2
	score += (30 - dist) * 1.5
	if dist > 15 {
		score += float64(candidate.Static.Shooting.MidRange) * 3
	}
	if candidate.Static.IsSuperstar {
		score += 5
	}
	if candidate.CallingForBall {
		score += 8
	}
	if passer.Static.Playmaking.CourtVision < 30 {
		score += 1 / (1 + passer.DistTo(candidate.Pos))
	}
	return score
}

// passBall selects PassChest by default and routes through the guard
// checks (previous-passer ineligibility, lane-blocked) before dispatch.
func passBall(g *GameState, fromIdx int, target *SimPlayer) {
	from := g.Players[fromIdx]
	targetIdx := indexOfPlayer(g, target)
	if targetIdx == g.LastPassFrom && g.GameTime-g.LastPassTime < 1.5 {
		return
	}
	if laneBlocked(g, from.Pos, target.Pos, from.TeamIdx) {
		return
	}
	AttemptPass(g, fromIdx, targetIdx, PassChest)
}
