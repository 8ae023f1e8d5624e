package game

import (
	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

// zoneSlots are the five fixed 2-3 zone positions relative to the attacked
// basket, indexed 0-4 and assigned to defenders by roster index.
var zoneSlots = []geom.Vec2{
	{X: -18, Y: 0},
	{X: -10, Y: -14},
	{X: -10, Y: 14},
	{X: -4, Y: -7},
	{X: -4, Y: 7},
}

// RunDefense positions the defending team for one tick; runs only in
// phases setup and action.
func RunDefense(g *GameState) {
	defTeam := 1 - g.Possession
	offTeam := g.Possession
	scheme := g.Teams[defTeam].Tactics.Defense

	switch scheme {
	case DefenseZone, DefenseFortress:
		runZoneDefense(g, defTeam, offTeam, scheme == DefenseFortress)
	case DefensePress:
		runManDefense(g, defTeam, offTeam, true)
	default: // DefenseMan, DefenseGamble
		runManDefense(g, defTeam, offTeam, false)
	}

	runScreenHandling(g, defTeam, offTeam)
	runHelpAndRotate(g, defTeam, offTeam)
}

// runManDefense assigns by roster index and slides the ball defender into
// the gap; off-ball defenders deny or help.
func runManDefense(g *GameState, defTeam, offTeam int, press bool) {
	defIdx := offenseIndices(defTeam)
	offIdx := offenseIndices(offTeam)
	dir := g.AttackDir(offTeam)
	basket := court.Basket(dir)

	var handlerIdx int = -1
	for _, i := range offIdx {
		if g.Players[i].HasBall {
			handlerIdx = i
			break
		}
	}

	for i := 0; i < 5; i++ {
		defender := g.Players[defIdx[i]]
		mark := g.Players[offIdx[i]]
		if g.DefAssignments == nil {
			g.DefAssignments = make(map[int]int)
		}
		g.DefAssignments[defIdx[i]] = offIdx[i]

		if offIdx[i] == handlerIdx {
			gap := 4 - 1.5*(float64(defender.Static.Defense.Perimeter)/100)
			unit := geom.Normalize(basket.Sub(mark.Pos))
			defender.TargetPos = mark.Pos.Add(unit.Scale(gap))
			defender.IsDefensiveSliding = true
			continue
		}

		defender.IsDefensiveSliding = true
		distToHandler := 1e9
		if handlerIdx != -1 {
			distToHandler = mark.DistTo(g.Players[handlerIdx].Pos)
		}
		pressDist := 15.0
		if press {
			pressDist = 94.0
		}
		if distToHandler < pressDist {
			toward := geom.Normalize(g.Players[handlerIdx].Pos.Sub(defender.Pos))
			defender.TargetPos = defender.Pos.Add(toward.Scale(defender.DistTo(mark.Pos) * 0.4))
		} else {
			toward := geom.Normalize(basket.Sub(defender.Pos))
			defender.TargetPos = defender.Pos.Add(toward.Scale(defender.DistTo(mark.Pos) * 0.4)).Add(toward.Scale(defender.DistTo(basket) * 0.3))
		}
	}
}

// runZoneDefense positions five zone defenders at fixed slots shifted
// toward the ball side; fortress additionally shifts further into the
// paint, collapsing the zone around the rim at the cost of perimeter coverage.
func runZoneDefense(g *GameState, defTeam, offTeam int, fortress bool) {
	defIdx := offenseIndices(defTeam)
	offIdx := offenseIndices(offTeam)
	dir := g.AttackDir(offTeam)
	basket := court.Basket(dir)

	ballSide := 0.0
	for _, i := range offIdx {
		if g.Players[i].HasBall {
			ballSide = g.Players[i].Pos.Y - basket.Y
			break
		}
	}
	shift := geom.Clamp1D(ballSide, -2, 2)

	for i := 0; i < 5; i++ {
		defender := g.Players[defIdx[i]]
		off := zoneSlots[i]
		dx, dy := off.X, off.Y+shift
		if fortress {
			dx *= 0.7 // collapse toward the paint
		}
		defender.TargetPos = geom.Vec2{X: basket.X + dx*float64(dir), Y: basket.Y + dy}
		defender.IsDefensiveSliding = true
	}
}

// runScreenHandling resolves screens set by isScreening offensive players
// against defenders within 4 ft: 50% switch, else fight through.
func runScreenHandling(g *GameState, defTeam, offTeam int) {
	if g.Teams[defTeam].Tactics.Defense != DefenseMan && g.Teams[defTeam].Tactics.Defense != DefensePress && g.Teams[defTeam].Tactics.Defense != DefenseGamble {
		return
	}
	offIdx := offenseIndices(offTeam)
	defIdx := offenseIndices(defTeam)

	for _, si := range offIdx {
		screener := g.Players[si]
		if !screener.IsScreening {
			continue
		}
		for _, di := range defIdx {
			defender := g.Players[di]
			if defender.DistTo(screener.Pos) >= 4 {
				continue
			}
			assigned := g.DefAssignments[di]
			if g.RNG.Bool(0.5) {
				for other, mark := range g.DefAssignments {
					if other != di && mark == si {
						g.DefAssignments[di] = si
						g.DefAssignments[other] = assigned
						break
					}
				}
			} else {
				mark := g.Players[assigned]
				away := geom.Normalize(defender.Pos.Sub(screener.Pos))
				defender.TargetPos = mark.Pos.Add(away.Scale(3))
			}
		}
	}
}

// runHelpAndRotate triggers a three-man rotation when the ball handler
// gets within 15 ft of the basket.
func runHelpAndRotate(g *GameState, defTeam, offTeam int) {
	offIdx := offenseIndices(offTeam)
	dir := g.AttackDir(offTeam)
	basket := court.Basket(dir)

	var handlerIdx int = -1
	for _, i := range offIdx {
		if g.Players[i].HasBall {
			handlerIdx = i
			break
		}
	}
	if handlerIdx == -1 || g.Players[handlerIdx].DistTo(basket) >= 15 {
		return
	}
	handler := g.Players[handlerIdx]

	defIdx := offenseIndices(defTeam)
	type distIdx struct {
		idx  int
		dist float64
	}
	var others []distIdx
	for _, di := range defIdx {
		if g.DefAssignments[di] == handlerIdx {
			continue
		}
		others = append(others, distIdx{di, g.Players[di].DistTo(basket)})
	}
	for i := 0; i < len(others); i++ {
		for j := i + 1; j < len(others); j++ {
			if others[j].dist < others[i].dist {
				others[i], others[j] = others[j], others[i]
			}
		}
	}

	midpoint := geom.Vec2{X: (handler.Pos.X + basket.X) / 2, Y: (handler.Pos.Y + basket.Y) / 2}

	if len(others) > 0 {
		helper := g.Players[others[0].idx]
		abandoned := g.DefAssignments[others[0].idx]
		helper.TargetPos = midpoint

		if len(others) > 1 {
			rotator := g.Players[others[1].idx]
			abandonedPos := g.Players[abandoned].Pos
			toward := geom.Normalize(basket.Sub(abandonedPos))
			rotator.TargetPos = abandonedPos.Add(toward.Scale(basket.Sub(abandonedPos).Len() * 0.3))
			second := g.DefAssignments[others[1].idx]

			if len(others) > 2 {
				rotator2 := g.Players[others[2].idx]
				secondPos := g.Players[second].Pos
				toward2 := geom.Normalize(basket.Sub(secondPos))
				rotator2.TargetPos = secondPos.Add(toward2.Scale(basket.Sub(secondPos).Len() * 0.4))
			}
		}
	}
}
