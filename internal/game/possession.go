package game

import (
	"math"

	"hoopsim/internal/game/court"
	"hoopsim/internal/game/geom"
)

// FreeThrows tracks an in-progress free-throw sequence.
type FreeThrows struct {
	ShooterIdx int
	Remaining  int // attempts left, including the current one
	Timer      float64
}

// StartFreeThrows begins a free-throw sequence for shooterIdx with the
// given attempt count (2, 3, or 1 for an and-one).
func StartFreeThrows(g *GameState, shooterIdx, attempts int) {
	g.FreeThrows = &FreeThrows{ShooterIdx: shooterIdx, Remaining: attempts}
	setPhase(g, PhaseFreeThrow)
}

// Phase is the possession-scoped state machine's current state.
type Phase int

const (
	PhaseJumpball Phase = iota
	PhaseInbound
	PhaseAdvance
	PhaseSetup
	PhaseAction
	PhaseShooting
	PhaseRebound
	PhaseFreeThrow
)

func (ph Phase) String() string {
	switch ph {
	case PhaseJumpball:
		return "jumpball"
	case PhaseInbound:
		return "inbound"
	case PhaseAdvance:
		return "advance"
	case PhaseSetup:
		return "setup"
	case PhaseAction:
		return "action"
	case PhaseShooting:
		return "shooting"
	case PhaseRebound:
		return "rebound"
	case PhaseFreeThrow:
		return "free_throw"
	default:
		return "?"
	}
}

// PossessionStage buckets the shot clock for decision-engine gating.
type PossessionStage int

const (
	StageEarly PossessionStage = iota
	StageMid
	StageLate
	StageDesperation
)

// RunPhase dispatches the current phase's per-tick handler.
func RunPhase(g *GameState, dt float64) {
	switch g.Phase {
	case PhaseJumpball:
		runJumpball(g, dt)
	case PhaseInbound:
		runInbound(g, dt)
	case PhaseAdvance:
		runAdvance(g, dt)
	case PhaseSetup:
		runSetup(g, dt)
	case PhaseAction:
		runAction(g, dt)
	case PhaseShooting:
		runShooting(g, dt)
	case PhaseRebound:
		runRebound(g, dt)
	case PhaseFreeThrow:
		runFreeThrow(g, dt)
	}
}

func setPhase(g *GameState, ph Phase) {
	g.Phase = ph
	g.PhaseTicks = 0
}

// runJumpball positions both centers at midcourt with others in a 12-ft
// ring; after ~3s a random winner among centers takes possession.
func runJumpball(g *GameState, dt float64) {
	mid := geom.Vec2{X: court.Width / 2, Y: court.Height / 2}
	for t := 0; t < 2; t++ {
		for i, idx := range offenseIndices(t) {
			p := g.Players[idx]
			if p.Static.Pos == C {
				offset := geom.Vec2{X: -3 + 6*float64(t), Y: 0}
				p.TargetPos = mid.Add(offset)
			} else {
				angle := float64(i) / 5 * 2 * math.Pi
				ring := geom.Vec2{X: 12 * math.Cos(angle), Y: 12 * math.Sin(angle)}
				p.TargetPos = mid.Add(ring)
			}
		}
	}

	if float64(g.PhaseTicks)/60.0 >= 3.0 {
		c0 := offenseIndices(0)[findCenterIndex(g, 0)]
		c1 := offenseIndices(1)[findCenterIndex(g, 1)]
		winner := 0
		if g.RNG.Bool(0.5) {
			winner = 1
		}
		g.Possession = winner
		winnerIdx := c0
		if winner == 1 {
			winnerIdx = c1
		}
		g.Players[winnerIdx].HasBall = true
		g.Ball.AttachToCarrier(winnerIdx, g.Players[winnerIdx].Pos)
		g.GameStarted = true
		logPlayByPlay(g, EventTypeJumpBall, g.Players[winnerIdx].ID, JumpBallPayload{WinnerTeam: winner})
		setPhase(g, PhaseAdvance)
	}
}

func findCenterIndex(g *GameState, team int) int {
	for i, idx := range offenseIndices(team) {
		if g.Players[idx].Static.Pos == C {
			return i
		}
	}
	return 0
}

// runInbound runs the three inbound stages.
func runInbound(g *GameState, dt float64) {
	off := offenseIndices(g.Possession)
	dir := g.AttackDir(g.Possession)
	t := float64(g.PhaseTicks) / 60.0

	inbounderIdx := off[0]
	baseline := court.OwnBasket(dir)
	inbounder := g.Players[inbounderIdx]

	runDefenseRetreat(g)

	switch {
	case t < 2.5:
		inbounder.TargetPos = baseline.Add(geom.Vec2{X: 0.5 * float64(-dir), Y: 0})
		if !g.Ball.Carried() || g.Ball.CarrierIdx != inbounderIdx {
			inbounder.HasBall = true
			g.Ball.AttachToCarrier(inbounderIdx, inbounder.Pos)
		}
		for j := 1; j < 5; j++ {
			g.Players[off[j]].TargetPos = court.SlotCoord(court.AllSlots[j], dir)
		}
	case t < 4.0:
		for j := 1; j < 5; j++ {
			p := g.Players[off[j]]
			if p.Static.Pos == PG {
				toward := geom.Normalize(inbounder.Pos.Sub(p.Pos))
				p.TargetPos = inbounder.Pos.Sub(toward.Scale(6))
			}
		}
	default:
		var closest *SimPlayer
		closestIdx := -1
		best := 1e9
		for j := 1; j < 5; j++ {
			p := g.Players[off[j]]
			d := inbounder.DistTo(p.Pos)
			if d < best {
				best = d
				closest = p
				closestIdx = off[j]
			}
		}
		if closest != nil {
			AttemptPass(g, inbounderIdx, closestIdx, PassChest)
			setPhase(g, PhaseAdvance)
		}
	}
}

func runDefenseRetreat(g *GameState) {
	defTeam := 1 - g.Possession
	dir := g.AttackDir(defTeam)
	own := court.Basket(dir)
	for _, i := range offenseIndices(defTeam) {
		p := g.Players[i]
		p.IsDefensiveSliding = false
		p.TargetPos = own
	}
}

// runAdvance moves the ball up the floor and decides action vs. setup
// based on the fast-break condition.
func runAdvance(g *GameState, dt float64) {
	off := offenseIndices(g.Possession)
	dir := g.AttackDir(g.Possession)
	basket := court.Basket(dir)

	var handlerIdx int = -1
	for _, i := range off {
		if g.Players[i].HasBall {
			handlerIdx = i
		}
	}
	if handlerIdx == -1 {
		return
	}
	handler := g.Players[handlerIdx]
	target := basket.Add(geom.Vec2{X: 22 * float64(-dir), Y: 0})
	handler.TargetPos = target

	for j, i := range off {
		if i == handlerIdx {
			continue
		}
		p := g.Players[i]
		switch p.Static.Pos {
		case C, PF:
			p.TargetPos = handler.Pos.Sub(geom.Vec2{X: 10 * float64(-dir), Y: 0})
		default:
			lane := 16.0
			if j%2 == 0 {
				lane = -lane
			}
			p.TargetPos = geom.Vec2{X: handler.Pos.X, Y: court.Height/2 + lane}
		}
	}

	runDefenseRetreat(g)

	halfCourtX := court.Width / 2
	crossed := (dir > 0 && handler.Pos.X > halfCourtX) || (dir < 0 && handler.Pos.X < halfCourtX)
	if crossed {
		g.CrossedHalfCourt = true
	}

	if g.CrossedHalfCourt {
		thresholdCrossed := (dir > 0 && handler.Pos.X > halfCourtX+8) || (dir < 0 && handler.Pos.X < halfCourtX-8)
		if thresholdCrossed {
			defendersCrossed := 0
			for _, i := range offenseIndices(1 - g.Possession) {
				p := g.Players[i]
				c := (dir > 0 && p.Pos.X > halfCourtX) || (dir < 0 && p.Pos.X < halfCourtX)
				if c {
					defendersCrossed++
				}
			}
			if defendersCrossed <= 2 {
				StartPlay(g, playbook["Fast Break"])
				setPhase(g, PhaseAction)
				return
			}
			setPhase(g, PhaseSetup)
			return
		}
	}

	g.AdvanceClock += dt
	if g.AdvanceClock > 8 {
		g.Turnover = true
		handlerID := ""
		for _, i := range off {
			if g.Players[i].HasBall {
				handlerID = g.Players[i].ID
			}
		}
		logPlayByPlay(g, EventTypeTurnover, handlerID, TurnoverPayload{PlayerID: handlerID, Reason: "8_second", Quarter: g.Quarter})
		ChangePossession(g)
		setPhase(g, PhaseInbound)
	}
}

// runSetup assigns initial slots and waits ~2s before selecting a play.
func runSetup(g *GameState, dt float64) {
	AssignRoles(g)
	FillEmptySlots(g)
	dir := g.AttackDir(g.Possession)
	for _, i := range offenseIndices(g.Possession) {
		p := g.Players[i]
		if p.HasSlot {
			p.TargetPos = court.SlotCoord(p.Slot, dir)
		}
	}

	if float64(g.PhaseTicks)/60.0 >= 2.0 {
		play := SelectPlay(g)
		StartPlay(g, play)
		setPhase(g, PhaseAction)
	}
}

// runAction is the main gameplay phase; possession stage gates handler
// behavior.
func runAction(g *GameState, dt float64) {
	stage := derivePossessionStage(g.ShotClock)
	g.PossessionStage = stage

	AssignRoles(g)
	EnforceFloorSpacing(g)
	FillEmptySlots(g)
	RunDefense(g)

	if g.CurrentPlay != nil {
		AdvancePlay(g, dt)
	}

	var handlerIdx int = -1
	for _, i := range offenseIndices(g.Possession) {
		if g.Players[i].HasBall {
			handlerIdx = i
		}
	}
	if handlerIdx != -1 {
		handler := g.Players[handlerIdx]
		handler.IsDribbling = true
		g.DribbleTime += dt

		if handler.CatchTimer <= 0 && g.CurrentPlay == nil {
			switch stage {
			case StageEarly:
				play := SelectPlay(g)
				StartPlay(g, play)
			case StageMid:
				RunDecisionEngine(g, handlerIdx)
			case StageLate:
				runLateClockDecision(g, handlerIdx)
			case StageDesperation:
				AttemptShot(g, handlerIdx)
			}
		}
	}

	runSteelCheck(g)
}

func runLateClockDecision(g *GameState, handlerIdx int) {
	handler := g.Players[handlerIdx]
	best := findBestScorer(g, handler.TeamIdx)
	if best != nil && best != handler && isOpen(g, best.Pos, handler.TeamIdx) {
		passBall(g, handlerIdx, best)
		return
	}
	dir := g.AttackDir(handler.TeamIdx)
	if handler.DistTo(court.Basket(dir)) < 25 {
		AttemptShot(g, handlerIdx)
		return
	}
	RunDecisionEngine(g, handlerIdx)
}

func findBestScorer(g *GameState, team int) *SimPlayer {
	var best *SimPlayer
	bestSkill := -1
	for _, i := range offenseIndices(team) {
		p := g.Players[i]
		skill := p.Static.Shooting.ThreePoint + p.Static.Shooting.MidRange + p.Static.Finishing.Layup
		if skill > bestSkill {
			bestSkill = skill
			best = p
		}
	}
	return best
}

// runSteelCheck evaluates the every-300-tick steal roll when the nearest
// defender is within 2.5 ft of the ball handler.
func runSteelCheck(g *GameState) {
	g.Tick300Counter++
	if g.Tick300Counter < 300 {
		return
	}
	g.Tick300Counter = 0

	var handlerIdx int = -1
	for _, i := range offenseIndices(g.Possession) {
		if g.Players[i].HasBall {
			handlerIdx = i
		}
	}
	if handlerIdx == -1 {
		return
	}
	handler := g.Players[handlerIdx]
	dist, defIdx := nearestDefenderDist(g, handler.Pos, handler.TeamIdx)
	if dist > 2.5 {
		return
	}
	defender := g.Players[defIdx]
	pSteal := 0.001 + float64(defender.Static.Defense.Steal)/100*0.012
	if g.RNG.Float64() < pSteal {
		g.BoxScore[defIdx].Steals++
		g.BoxScore[handlerIdx].Turnovers++
		handler.HasBall = false
		g.Ball.AttachToCarrier(defIdx, defender.Pos)
		defender.HasBall = true
		logPlayByPlay(g, EventTypeSteal, defender.ID, StealPayload{StealerID: defender.ID, VictimID: handler.ID, Quarter: g.Quarter})
		logPlayByPlay(g, EventTypeTurnover, handler.ID, TurnoverPayload{PlayerID: handler.ID, Reason: "steal", Quarter: g.Quarter})
		ClearPlay(g)
		ChangePossession(g)
	}
}

// runShooting holds while the ball is in flight on a shot; resolution is
// driven from Tick's flight-advance step.
func runShooting(g *GameState, dt float64) {
	for _, i := range offenseIndices(g.Possession) {
		p := g.Players[i]
		if p.Static.Pos == C || p.Static.Pos == PF {
			dir := g.AttackDir(g.Possession)
			p.TargetPos = court.Basket(dir)
		} else {
			p.TargetPos = geom.Vec2{X: court.Width / 2, Y: p.Pos.Y}
		}
	}
	for _, i := range offenseIndices(1 - g.Possession) {
		p := g.Players[i]
		p.IsDefensiveSliding = true
	}
}

// ReboundBoxOutWindow is the 1.5s box-out window before rebound resolution.
const ReboundBoxOutWindow = 1.5

// runRebound boxes out for 1.5s then resolves the rebound winner.
func runRebound(g *GameState, dt float64) {
	landing := g.Ball.Pos
	t := float64(g.PhaseTicks) / 60.0

	dir := g.AttackDir(g.Possession)
	basket := court.Basket(dir)

	if t < ReboundBoxOutWindow {
		for _, i := range offenseIndices(1 - g.Possession) {
			p := g.Players[i]
			mark := g.Players[g.DefAssignments[i]]
			toward := geom.Normalize(landing.Sub(mark.Pos))
			p.TargetPos = mark.Pos.Add(toward.Scale(mark.DistTo(landing)))
			p.IsDefensiveSliding = false
		}
		for _, i := range offenseIndices(g.Possession) {
			p := g.Players[i]
			if p.Static.Pos == C || p.Static.Pos == PF {
				jitter := (g.RNG.Float64()*2 - 1) * 3
				p.TargetPos = landing.Add(geom.Vec2{X: jitter, Y: jitter})
			} else {
				p.TargetPos = geom.Vec2{X: court.Width / 2, Y: p.Pos.Y}
			}
		}
		return
	}

	type candidate struct {
		idx  int
		dist float64
	}
	var candidates []candidate
	for i, p := range g.Players {
		d := p.DistTo(landing)
		if d < 15 {
			candidates = append(candidates, candidate{i, d})
		}
	}
	if len(candidates) == 0 {
		for i, p := range g.Players {
			candidates = append(candidates, candidate{i, p.DistTo(landing)})
		}
		for a := 0; a < len(candidates); a++ {
			for b := a + 1; b < len(candidates); b++ {
				if candidates[b].dist < candidates[a].dist {
					candidates[a], candidates[b] = candidates[b], candidates[a]
				}
			}
		}
		if len(candidates) > 3 {
			candidates = candidates[:3]
		}
	}

	best := -1
	bestValue := -1.0
	for _, c := range candidates {
		p := g.Players[c.idx]
		isDef := p.TeamIdx != g.Possession
		boxOutBonus := 1.0
		if isDef {
			boxOutBonus = 1.8
		}
		posBonus := 1.0
		switch p.Static.Pos {
		case C:
			posBonus = 1.3
		case PF:
			posBonus = 1.15
		}
		skillMod := float64(p.Static.Defense.Rebounding) / 100
		basketDist := p.DistTo(basket)
		value := skillMod * (float64(p.Static.Athletic.Height) / 180) * (float64(p.Static.Athletic.Vertical) / 70) *
			maxF(0.1, 15-c.dist) * boxOutBonus * posBonus * maxF(0.5, 1.2-basketDist/40) * (0.5 + 0.5*g.RNG.Float64())
		if value > bestValue {
			bestValue = value
			best = c.idx
		}
	}
	if best == -1 {
		return
	}

	winner := g.Players[best]
	g.Ball.EndBounce()
	winner.HasBall = true
	g.Ball.AttachToCarrier(best, winner.Pos)

	defRebound := winner.TeamIdx != g.Possession
	logPlayByPlay(g, EventTypeRebound, winner.ID, ReboundPayload{RebounderID: winner.ID, Offensive: !defRebound, Quarter: g.Quarter})

	if defRebound {
		g.BoxScore[best].DefRebounds++
		ChangePossession(g)
		g.ShotClock = 24
		pgIdx := -1
		for _, i := range offenseIndices(g.Possession) {
			if g.Players[i].Static.Pos == PG {
				pgIdx = i
			}
		}
		if pgIdx != -1 && pgIdx != best {
			AttemptPass(g, best, pgIdx, PassOverhead)
		}
		g.Slots = make(map[court.Slot]int)
		g.Roles = make(map[int]OffenseRole)
		g.DefAssignments = make(map[int]int)
		ClearPlay(g)
		setPhase(g, PhaseAdvance)
	} else {
		g.BoxScore[best].OffRebounds++
		g.ShotClock = 14
		setPhase(g, PhaseSetup)
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// runFreeThrow steps the free-throw sequence: one attempt per 1.5s.
func runFreeThrow(g *GameState, dt float64) {
	if g.FreeThrows == nil {
		return
	}
	ft := g.FreeThrows
	ft.Timer += dt
	if ft.Timer < 1.5 {
		return
	}
	ft.Timer = 0

	shooter := g.Players[ft.ShooterIdx]
	dir := g.AttackDir(shooter.TeamIdx)
	shooter.Pos = court.FreeThrowSpot(dir)
	shooter.TargetPos = shooter.Pos

	made := g.RNG.Float64() < 0.5+0.35*(float64(shooter.Static.Shooting.FreeThrow)/100)
	g.BoxScore[ft.ShooterIdx].FTAttempted++
	if made {
		g.BoxScore[ft.ShooterIdx].FTMade++
		g.BoxScore[ft.ShooterIdx].Points++
		g.AddScore(shooter.TeamIdx, 1)
	}
	ft.Remaining--

	logPlayByPlay(g, EventTypeFreeThrow, shooter.ID, FreeThrowPayload{
		ShooterID: shooter.ID, Made: made, Remaining: ft.Remaining, Quarter: g.Quarter,
	})

	if ft.Remaining <= 0 {
		if made {
			ChangePossession(g)
			setPhase(g, PhaseInbound)
		} else {
			basket := court.Basket(dir)
			g.Ball.StartBounce(shooter.Pos, basket)
			setPhase(g, PhaseRebound)
		}
		g.FreeThrows = nil
	}
}
